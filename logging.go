package tnda

import (
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"log"
)

func (z *TNDA) WithGoLogger(parentLogger *log.Logger) {
	z.WithLogWrapLogger(logwrap.New(golog.Wrap(parentLogger)))
}

func (z *TNDA) WithLogWrapLogger(lw logwrap.Logger) {
	z.logger = lw
}
