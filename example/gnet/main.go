package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/raymanaeron/liblogger"
	"github.com/raymanaeron/liblogger/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := liblogger.NewBuilder().
		File("/var/log/gnet", "gnet.log").
		ThresholdString("debug").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Structured adapter turns "key=%v" pairs into record context
	gnetAdapter := compat.NewStructuredGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
