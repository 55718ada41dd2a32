package core

import (
	"path/filepath"
	"runtime"
)

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// Location builds a CallerInfo from an explicit file and line, for callers
// that already know their source position.
func Location(file string, line int) CallerInfo {
	if file == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Defined:   true,
	}
}

// GetCaller retrieves caller information. skip 0 is the function that
// called GetCaller.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}
	return callerFromPC(pc, file, line)
}

// CallerFromPC resolves a program counter, as recorded by runtime.Callers
// or log/slog, into a CallerInfo.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      f.File,
		ShortFile: filepath.Base(f.File),
		Line:      f.Line,
		Function:  f.Function,
		Defined:   true,
	}
}

func callerFromPC(pc uintptr, file string, line int) CallerInfo {
	var funcName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
