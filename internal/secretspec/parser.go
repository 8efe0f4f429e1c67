// Package secretspec parses the secrets input of the step.
//
// The input is a list of entries separated by ";". Each entry names a
// secret path, an optional dotted selector into the secret's data and an
// optional variable name after "|":
//
//	secret/ci npm.token ;
//	secret/ci aws | AWS_CREDENTIALS ;
//	secret/db | DB_SECRET
//
// Without a selector the whole secret is requested and a name is required.
package secretspec

import (
	"strings"
	"unicode"

	dserrors "github.com/systmms/vaultstep/internal/errors"
)

// Request is a single secret to fetch and the names to publish it under.
type Request struct {
	Path          string `json:"path" yaml:"path"`
	Selector      string `json:"selector" yaml:"selector"`
	OutputVarName string `json:"outputVarName" yaml:"outputVarName"`
	EnvVarName    string `json:"envVarName" yaml:"envVarName"`
}

// WholeSecret reports whether the request asks for the entire payload.
func (r Request) WholeSecret() bool {
	return r.Selector == ""
}

const (
	msgMissingPath    = "You must provide at least a valid path."
	msgMissingMapName = "You must provide a value when mapping a secret to a name."
	msgMissingAllName = "You must provide a valid map name when getting all secrets."
)

// Parse turns the secrets input into requests, in input order. Empty
// entries, such as those left by a trailing ";", are ignored.
func Parse(raw string) ([]Request, error) {
	var requests []Request

	for _, candidate := range strings.Split(raw, ";") {
		entry := strings.TrimSpace(candidate)
		if entry == "" {
			continue
		}

		req, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func parseEntry(entry string) (Request, error) {
	left := entry
	mapName := ""
	mapped := false
	if i := strings.Index(entry, "|"); i >= 0 {
		left = strings.TrimSpace(entry[:i])
		mapName = strings.TrimSpace(entry[i+1:])
		mapped = true
	}

	path, selector := splitPath(left)

	if path == "" {
		return Request{}, &dserrors.ParseError{Entry: entry, Message: msgMissingPath}
	}
	if mapped && mapName == "" {
		return Request{}, &dserrors.ParseError{Entry: entry, Message: msgMissingMapName}
	}
	if selector == "" && !mapped {
		return Request{}, &dserrors.ParseError{Entry: entry, Message: msgMissingAllName}
	}

	outputName, envName := DeriveNames(selector, mapName, mapped)

	return Request{
		Path:          path,
		Selector:      selector,
		OutputVarName: outputName,
		EnvVarName:    envName,
	}, nil
}

// splitPath splits on the first run of whitespace.
func splitPath(s string) (path, selector string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
