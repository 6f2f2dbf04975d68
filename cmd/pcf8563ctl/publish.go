package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ajanata/tinygo-drivers/pcf8563"
)

// clock is the part of the driver the publisher needs.
type clock interface {
	GetDateTime() (pcf8563.DateTime, error)
	Century() (uint8, error)
}

// broker is the part of an MQTT client the publisher needs.
type broker interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type publishConfig struct {
	Topic    string
	QoS      byte
	Retain   bool
	Interval time.Duration
}

// reading is the JSON document published for every new clock value.
type reading struct {
	Time    string `json:"time"`
	Year    int    `json:"year"`
	Month   uint8  `json:"month"`
	Day     uint8  `json:"day"`
	Weekday uint8  `json:"weekday"`
	Hours   uint8  `json:"hours"`
	Minutes uint8  `json:"minutes"`
	Seconds uint8  `json:"seconds"`
}

func newReading(dt pcf8563.DateTime, century uint8) reading {
	year := 2000 + 100*int(century) + int(dt.Year)
	return reading{
		Time:    fmt.Sprintf("%d-%02d-%02dT%02d:%02d:%02dZ", year, dt.Month, dt.Day, dt.Hours, dt.Minutes, dt.Seconds),
		Year:    year,
		Month:   dt.Month,
		Day:     dt.Day,
		Weekday: dt.Weekday,
		Hours:   dt.Hours,
		Minutes: dt.Minutes,
		Seconds: dt.Seconds,
	}
}

// publisher polls the clock and publishes every reading that differs from the previous one. It is the only user of
// the clock while it runs.
type publisher struct {
	rtc    clock
	client broker
	cfg    publishConfig
	log    *slog.Logger

	last reading
}

// run polls until ctx is done. Bus errors are logged and retried on the next tick; publish errors end the run.
func (p *publisher) run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		err := p.poll()
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *publisher) poll() error {
	dt, err := p.rtc.GetDateTime()
	if err != nil {
		p.log.Warn("could not read clock", slog.Any("err", err))
		return nil
	}
	century, err := p.rtc.Century()
	if err != nil {
		p.log.Warn("could not read century", slog.Any("err", err))
		return nil
	}

	r := newReading(dt, century)
	if r == p.last {
		return nil
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("could not encode reading: %w", err)
	}

	token := p.client.Publish(p.cfg.Topic, p.cfg.QoS, p.cfg.Retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("could not publish to %q: %w", p.cfg.Topic, err)
	}
	p.last = r
	p.log.Debug("published", slog.String("topic", p.cfg.Topic), slog.String("time", r.Time))
	return nil
}

// connect dials the MQTT broker.
func connect(url, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(url).
		SetClientID(clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("could not connect to %q: %w", url, err)
	}
	return client, nil
}
