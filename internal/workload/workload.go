/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package workload parses text traces of cache operations and replays them against lrumap.Cache.
//
// A trace contains one operation per line. Blank lines and lines starting with '#' are ignored.
//
//	set <key> <value>
//	get <key>
//	access <key>
//	del <key>
//	clear
//
// The value of "set" is the rest of the line after the key, so it may contain spaces.
package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// OpKind is a kind of trace operation.
type OpKind string

// Trace operations.
const (
	OpSet    OpKind = "set"
	OpGet    OpKind = "get"
	OpAccess OpKind = "access"
	OpDelete OpKind = "del"
	OpClear  OpKind = "clear"
)

// Parsing errors.
var (
	ErrUnknownOp        = errors.New("unknown operation")
	ErrWrongArgsNumber  = errors.New("wrong number of arguments")
	ErrTraceLineTooLong = errors.New("trace line is too long")
)

const maxLineSize = 1024 * 1024

// Op is a single parsed trace operation.
type Op struct {
	Kind  OpKind
	Key   string
	Value string
	// Line is the 1-based line number of the operation in the trace.
	Line int
}

// ParseError describes a malformed trace line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads the whole trace. The returned error is a *ParseError for malformed lines.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		op, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNum, Err: err}
		}
		op.Line = lineNum
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: lineNum + 1, Err: ErrTraceLineTooLong}
		}
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ops, nil
}

func parseLine(line string) (Op, error) {
	fields := strings.Fields(line)
	kind := OpKind(strings.ToLower(fields[0]))
	switch kind {
	case OpSet:
		if len(fields) < 3 {
			return Op{}, fmt.Errorf("%s: %w: want key and value", kind, ErrWrongArgsNumber)
		}
		return Op{Kind: kind, Key: fields[1], Value: strings.Join(fields[2:], " ")}, nil
	case OpGet, OpAccess, OpDelete:
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%s: %w: want key", kind, ErrWrongArgsNumber)
		}
		return Op{Kind: kind, Key: fields[1]}, nil
	case OpClear:
		if len(fields) != 1 {
			return Op{}, fmt.Errorf("%s: %w: want none", kind, ErrWrongArgsNumber)
		}
		return Op{Kind: kind}, nil
	}
	return Op{}, fmt.Errorf("%w %q", ErrUnknownOp, fields[0])
}
