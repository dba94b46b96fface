package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput は必須入力が欠けている場合のエラーです。
	ErrInvalidInput = errors.New("invalid input")
	// ErrDecode は画像としてデコードできないバイト列を受け取った場合のエラーです。
	ErrDecode = errors.New("image decode failed")
	// ErrAssetUnavailable は任意素材（ロゴ・背景）が取得できなかったことを示します。
	ErrAssetUnavailable = errors.New("asset unavailable")
	// ErrDiagnosticWrite は診断用書き出しの失敗です。呼び出し側でログに残すだけにします。
	ErrDiagnosticWrite = errors.New("diagnostic write failed")
)

// DecodeError はどの入力のデコードに失敗したかを保持します。
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", ErrDecode, e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is で errors.Is(err, ErrDecode) を満たします。
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
