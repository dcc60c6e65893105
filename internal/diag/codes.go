package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Parse
	ParseInfo            Code = 1000
	ParseUnmatchedOpener Code = 1001
	ParseUnmatchedCloser Code = 1002
	ParseBoundaryOverlap Code = 1003
	ParseCoverageGap     Code = 1004
	ParseDepthExceeded   Code = 1005

	// I/O and infrastructure
	IOLoadFileError Code = 4001
	CacheError      Code = 4002
	ConfigError     Code = 4003
)

var codeName = map[Code]string{
	UnknownCode:          "UnknownCode",
	ParseInfo:            "ParseInfo",
	ParseUnmatchedOpener: "ParseUnmatchedOpener",
	ParseUnmatchedCloser: "ParseUnmatchedCloser",
	ParseBoundaryOverlap: "ParseBoundaryOverlap",
	ParseCoverageGap:     "ParseCoverageGap",
	ParseDepthExceeded:   "ParseDepthExceeded",
	IOLoadFileError:      "IOLoadFileError",
	CacheError:           "CacheError",
	ConfigError:          "ConfigError",
}

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	ParseInfo:            "Parse information",
	ParseUnmatchedOpener: "Opening mark is never closed",
	ParseUnmatchedCloser: "Closing mark has no opener",
	ParseBoundaryOverlap: "Token crosses a group boundary",
	ParseCoverageGap:     "Group children do not cover the group",
	ParseDepthExceeded:   "Maximum nesting depth exceeded",
	IOLoadFileError:      "Failed to load file",
	CacheError:           "Parse cache failure",
	ConfigError:          "Invalid configuration",
}

// ID returns the stable short identifier, e.g. "PRS1001".
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("PRS%04d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("IO%04d", uint16(c))
	}
	return "E0000"
}

func (c Code) String() string {
	if name, ok := codeName[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	return codeDescription[c]
}
