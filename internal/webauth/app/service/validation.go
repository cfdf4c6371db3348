package service

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"

	minNameLength     = 2
	maxNameLength     = 100
	minPasswordLength = 8
	maxPasswordBytes  = 72
)

// ValidationErrors maps a form field to the message describing why its value was rejected.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field+": "+e[field])
	}

	return "invalid registration: " + strings.Join(messages, ", ")
}

func normalizeRegistration(in Registration) Registration {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	return in
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(in Registration) ValidationErrors {
	errs := ValidationErrors{}

	switch nameLength := utf8.RuneCountInString(in.Name); {
	case nameLength < minNameLength:
		errs[FieldName] = "Name must be at least 2 characters long"
	case nameLength > maxNameLength:
		errs[FieldName] = "Name must be at most 100 characters long"
	}

	if !isEmail(in.Email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}

	switch {
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		errs[FieldPassword] = "Password must be at least 8 characters long"
	case len(in.Password) > maxPasswordBytes:
		errs[FieldPassword] = "Password is too long"
	}

	return errs
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	domainPart := value[strings.LastIndex(value, "@")+1:]
	return strings.Contains(domainPart, ".")
}
