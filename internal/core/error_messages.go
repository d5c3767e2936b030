package core

// Error codes shown to admins next to a failed import. Quote the code when
// reporting a problem; ERR000 means the technical error is only in the log.
//
//	ROS001  no employee records could be extracted
//	ROS002  workbook format that cannot be read (.xls)
//	ROS003  workbook file is damaged
//	FILE001 upload exceeds the size limit
//	FILE002 malformed CSV
//	FILE004 no file in the request
//	FILE005 zero-byte file
//	DB001   duplicate key
//	DB002   foreign key violation
//	DB003   connection refused
//	DB004   connection reset
//	DB005   timeout
//	DB006   deadlock
//	IMP001  all import slots busy
//	IMP002  unknown import ID
//	IMP003  request cancelled
//	IMP004  request deadline exceeded
//	RATE001 per-client rate limit
//	ERR000  anything else
//
// Patterns are matched case-insensitively with strings.Contains, first
// match wins, so specific patterns sit above general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Extraction
	{"no employee records found", UserMessage{
		Message: "No employee records were found in the file",
		Action:  "Make sure the sheet has a header row such as 氏名 / 部署 / 社員番号 and is comma or tab separated",
		Code:    "ROS001",
	}},
	{"unsupported spreadsheet format", UserMessage{
		Message: "This spreadsheet format cannot be read",
		Action:  "Save the file as .xlsx or .csv and upload it again",
		Code:    "ROS002",
	}},
	{"invalid workbook", UserMessage{
		Message: "The workbook could not be opened",
		Action:  "Check that the file is not damaged or password protected",
		Code:    "ROS003",
	}},

	// Files
	{"file too large", UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Remove unused sheets or columns and try again",
		Code:    "FILE001",
	}},
	{"request body too large", UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Remove unused sheets or columns and try again",
		Code:    "FILE001",
	}},
	{"invalid csv", UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Export the roster again from the source system",
		Code:    "FILE002",
	}},
	{"no file provided", UserMessage{
		Message: "No file was selected",
		Action:  "Choose a roster file to upload",
		Code:    "FILE004",
	}},
	{"empty file", UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a roster file with at least one employee",
		Code:    "FILE005",
	}},

	// Database
	{"duplicate key", UserMessage{
		Message: "A record with this ID already exists",
		Action:  "Please try the import again",
		Code:    "DB001",
	}},
	{"violates foreign key", UserMessage{
		Message: "Referenced import does not exist",
		Action:  "Please try the import again",
		Code:    "DB002",
	}},
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB003",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB004",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Try again later",
		Code:    "DB005",
	}},
	{"deadlock", UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB006",
	}},

	// Import lifecycle
	{"too many imports", UserMessage{
		Message: "Other imports are still running",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}},
	{"import not found", UserMessage{
		Message: "Import not found",
		Action:  "Check the import ID in the history list",
		Code:    "IMP002",
	}},
	{"context canceled", UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "IMP003",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "IMP004",
	}},

	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000; nil maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (for logs) with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err; it returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
