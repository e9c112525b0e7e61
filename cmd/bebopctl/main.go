// main.go

// Copyright (C) 2018  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// bebopctl sends one-shot commands to a Bebop, or serves it over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SMerrony/bebop"
	"github.com/SMerrony/bebop/bebopserver"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "bebopctl"
	app.Usage = "Pilot a Parrot Bebop drone"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: bebop.DefaultConfigPath,
			Usage: "YAML config file, defaults are used if it does not exist",
		},
	}
	app.Commands = commands

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

var commands = []cli.Command{
	{
		Name:   "takeoff",
		Usage:  "Take off and hover",
		Action: oneShot((*bebop.Bebop).TakeOff),
	},
	{
		Name:   "land",
		Usage:  "Land",
		Action: oneShot((*bebop.Bebop).Land),
	},
	{
		Name:   "emergency",
		Usage:  "Cut the motors immediately",
		Action: oneShot((*bebop.Bebop).Emergency),
	},
	{
		Name:   "serve",
		Usage:  "Start the HTTP/REST server",
		Action: serveCommand,
		Flags: []cli.Flag{
			cli.UintFlag{
				Name:  "port, p",
				Value: 8000,
				Usage: "HTTP listening port",
			},
			cli.BoolFlag{
				Name:  "video",
				Usage: "Relay the video stream on /video",
			},
		},
	},
}

func loadConfig(ctx *cli.Context) (bebop.Config, error) {
	path := ctx.GlobalString("config")
	cfg, err := bebop.LoadConfig(path)
	if os.IsNotExist(err) && !ctx.GlobalIsSet("config") {
		return bebop.DefaultConfig(), nil
	}
	return cfg, err
}

// connect performs the handshake, which can be abandoned with ^C
func connect(ctx *cli.Context) (*bebop.Bebop, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	sctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return bebop.Connect(sctx, cfg)
}

func oneShot(cmd func(*bebop.Bebop) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		drone, err := connect(ctx)
		if err != nil {
			return err
		}
		defer drone.Shutdown()
		return cmd(drone)
	}
}

func serveCommand(ctx *cli.Context) error {
	drone, err := connect(ctx)
	if err != nil {
		return err
	}
	defer drone.Shutdown()

	var video bebopserver.VideoSource
	if ctx.Bool("video") {
		vs, err := drone.VideoConnect()
		if err != nil {
			return err
		}
		video = vs
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", ctx.Uint("port")),
		Handler: bebopserver.New(drone, video),
	}
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		select {
		case <-signalChan:
			log.Print("Caught SIGINT or SIGTERM, shutting down")
		case <-drone.Done():
			log.Printf("Piloting stopped - %v", drone.Err())
		}
		srv.Close()
	}()

	log.Printf("Listening on %s\n", srv.Addr)
	if err = srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return drone.Err()
}
