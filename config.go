// config.go

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

package bebop

import (
	"io/ioutil"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"
)

const (
	defaultBebopAddr         = "192.168.42.1"
	defaultDiscoveryPort     = 44444
	defaultCommandPort       = 54321
	defaultD2CPort           = 43210
	defaultStreamPort        = 55004
	defaultStreamControlPort = 55005
	defaultUpdateRate        = 30 // PCMDs per second
	defaultVideoBufferSize   = 128
)

// DefaultConfigPath is where LoadConfig looks when given an empty path
const DefaultConfigPath = "~/.bebop.yml"

// Config holds everything needed to reach a drone.
// Zero-valued fields in a config file are replaced by the defaults.
type Config struct {
	Address           string `yaml:"address"`
	DiscoveryPort     int    `yaml:"discovery_port"`      // TCP, handshake
	CommandPort       int    `yaml:"command_port"`        // UDP, controller to drone
	D2CPort           int    `yaml:"d2c_port"`            // UDP, drone to controller (declared only)
	StreamPort        int    `yaml:"stream_port"`         // UDP, video stream
	StreamControlPort int    `yaml:"stream_control_port"` // UDP, video stream control (declared only)
	ControllerType    string `yaml:"controller_type"`
	ControllerName    string `yaml:"controller_name"`
	UpdateRate        int    `yaml:"update_rate"`       // piloting commands sent per second
	VideoBufferSize   int    `yaml:"video_buffer_size"` // datagrams held before dropping
}

// DefaultConfig returns the settings of a factory-fresh Bebop on its own access point
func DefaultConfig() Config {
	return Config{
		Address:           defaultBebopAddr,
		DiscoveryPort:     defaultDiscoveryPort,
		CommandPort:       defaultCommandPort,
		D2CPort:           defaultD2CPort,
		StreamPort:        defaultStreamPort,
		StreamControlPort: defaultStreamControlPort,
		ControllerType:    "computer",
		ControllerName:    "bebop",
		UpdateRate:        defaultUpdateRate,
		VideoBufferSize:   defaultVideoBufferSize,
	}
}

// LoadConfig reads a YAML config file over the defaults.
// A leading ~ in path is expanded to the user's home directory.
func LoadConfig(path string) (cfg Config, err error) {
	if path == "" {
		path = DefaultConfigPath
	}
	path, err = homedir.Expand(path)
	if err != nil {
		return cfg, err
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fileCfg Config
	if err = yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, err
	}
	cfg = DefaultConfig()
	cfg.merge(fileCfg)
	return cfg, cfg.Validate()
}

// merge copies every non-zero field of o into cfg, except UpdateRate which
// is always taken when set so that a bad value is reported rather than hidden.
func (cfg *Config) merge(o Config) {
	if o.Address != "" {
		cfg.Address = o.Address
	}
	if o.DiscoveryPort != 0 {
		cfg.DiscoveryPort = o.DiscoveryPort
	}
	if o.CommandPort != 0 {
		cfg.CommandPort = o.CommandPort
	}
	if o.D2CPort != 0 {
		cfg.D2CPort = o.D2CPort
	}
	if o.StreamPort != 0 {
		cfg.StreamPort = o.StreamPort
	}
	if o.StreamControlPort != 0 {
		cfg.StreamControlPort = o.StreamControlPort
	}
	if o.ControllerType != "" {
		cfg.ControllerType = o.ControllerType
	}
	if o.ControllerName != "" {
		cfg.ControllerName = o.ControllerName
	}
	if o.UpdateRate != 0 {
		cfg.UpdateRate = o.UpdateRate
	}
	if o.VideoBufferSize != 0 {
		cfg.VideoBufferSize = o.VideoBufferSize
	}
}

// Validate checks the settings that cannot be caught by the network layer
func (cfg Config) Validate() error {
	if cfg.UpdateRate <= 0 {
		return &ConfigError{Kind: InvalidUpdateRate, Value: cfg.UpdateRate}
	}
	return nil
}

// updatePeriod is the gap between successive piloting commands
func (cfg Config) updatePeriod() time.Duration {
	return time.Second / time.Duration(cfg.UpdateRate)
}
