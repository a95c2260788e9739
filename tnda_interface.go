package tnda

import (
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/tnda/attribute"
	"github.com/shimmeringbee/tnda/implcaps"
	"github.com/shimmeringbee/tnda/middleware"
)

var _ implcaps.TNDAInterface = (*tndaInterface)(nil)

type tndaInterface struct {
	gw *TNDA
}

func (z tndaInterface) Logger() logwrap.Logger {
	return z.gw.logger
}

func (z tndaInterface) NewAttributeMonitor() attribute.Monitor {
	return attribute.NewMonitor(z.gw.feed, z.gw.logger)
}

func (z tndaInterface) SendEvent(a any) {
	z.gw.sendEvent(a)
}

func (z tndaInterface) Requester() middleware.Requester {
	return z.gw.dispatcher
}
