// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// program errors - the taxonomy returned to the invoker of a command
var (
	ErrAddressMismatch      = InvalidError("address does not match derived address")
	ErrAlreadyAllocated     = ExistsError("slot already allocated")
	ErrAlreadyInitialized   = ExistsError("record already initialized")
	ErrIllegalOwner         = InvalidError("slot is not owned by the program")
	ErrInsufficientFunds    = ProcessError("insufficient funds")
	ErrInvalidCommand       = InvalidError("invalid command")
	ErrInvalidInput         = InvalidError("invalid input")
	ErrMissingSignature     = InvalidError("missing required signature")
	ErrUninitializedAccount = NotFoundError("record is not initialized")
)

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = GenericError("already initialised")
	ErrAlreadyProcessed         = ExistsError("transaction already processed")
	ErrBufferTooSmall           = LengthError("buffer too small")
	ErrCertificateExpired       = InvalidError("certificate is not currently valid")
	ErrCertificateFileExists    = ExistsError("certificate file already exists")
	ErrConnectRequired          = InvalidError("connect is required")
	ErrCryptoFailed             = ProcessError("encrypt or decrypt failed")
	ErrDatabaseVersionMismatch  = ProcessError("database version mismatch")
	ErrDuplicateSlot            = InvalidError("duplicate slot in transaction")
	ErrExternalDataModified     = ProcessError("slot data modified by a program that does not own it")
	ErrFingerprintMismatch      = InvalidError("server certificate fingerprint mismatch")
	ErrIdentityExists           = ExistsError("identity already exists")
	ErrIdentityNameRequired     = InvalidError("identity name is required")
	ErrIncorrectService         = InvalidError("incorrect allocation service")
	ErrInvalidChain             = InvalidError("invalid chain")
	ErrInvalidFingerprint       = InvalidError("invalid certificate fingerprint")
	ErrInvalidIPAddress         = InvalidError("invalid IP address")
	ErrInvalidKeyLength         = LengthError("invalid key length")
	ErrInvalidLamports          = InvalidError("invalid lamports")
	ErrInvalidPasswordLength    = LengthError("password must be at least 8 characters")
	ErrInvalidSeeds             = InvalidError("seeds derive an on-curve address")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrInvalidSlotCount         = LengthError("invalid slot count")
	ErrInvalidSlotSize          = LengthError("invalid slot size")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrInvalidTransaction       = RecordError("invalid transaction")
	ErrKeyFileExists            = ExistsError("key file already exists")
	ErrLamportsOverflow         = ProcessError("lamports overflow")
	ErrMaxSeedLengthExceeded    = LengthError("maximum seed length exceeded")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrNotEnoughSlots           = InvalidError("not enough slots supplied")
	ErrNotFoundIdentity         = NotFoundError("identity not found")
	ErrNotInitialised           = GenericError("not initialised")
	ErrOnlyOnTestChain          = ProcessError("only available on a test chain")
	ErrPasswordMismatch         = InvalidError("passwords do not match")
	ErrPasswordRequired         = InvalidError("password is required")
	ErrProgramAlreadyRegistered = ExistsError("program already registered")
	ErrRateLimiting             = ProcessError("rate limiting")
	ErrReadOnlyModified         = ProcessError("read-only slot modified")
	ErrRecordTruncated          = LengthError("record truncated")
	ErrSeedChecksumMismatch     = RecordError("seed checksum mismatch")
	ErrSeedHeaderMismatch       = RecordError("seed header mismatch")
	ErrTransactionInUse         = ProcessError("transaction already in use")
	ErrTransactionTooLarge      = LengthError("transaction too large")
	ErrUnbalancedTransaction    = ProcessError("lamports not conserved")
	ErrUnknownProgram           = NotFoundError("unknown program")
	ErrWrongPassword            = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
