package domain

import (
	"errors"
	"fmt"
)

// ErrNoImageGenerated は生成APIのレスポンスに画像が含まれていなかったことを表します。
var ErrNoImageGenerated = errors.New("no image produced")

// GenerationError は画像生成が失敗したことを表します。
type GenerationError struct {
	Unit string // "cover" や "page 3" など
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Unit, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StoreError はライブラリの読み書きが失敗したことを表します。
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
