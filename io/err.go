package io

import (
	"errors"

	"github.com/ezrec/m6502/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrTapeOutput = errors.New(f("tape output failed"))
)
