// Package stats submits bot metrics to InfluxDB.
// A nil *Client is valid and discards everything, so callers don't need to check if metrics are enabled.
package stats

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/warden-bot/warden/common/log"
)

// Client is an InfluxDB client
type Client struct {
	client influxdb2.Client
	write  api.WriteAPI

	mu       sync.Mutex
	events   map[string]uint32
	counters map[string]uint32
}

// Counter names
const (
	Commands     = "commands"
	Attributed   = "attributed"
	Unattributed = "unattributed"
	Suspicious   = "suspicious"
	RefreshError = "refresh_errors"
)

// New creates a new client. Metrics are submitted every minute until ctx is cancelled.
func New(ctx context.Context, url, token, organization, bucket string) *Client {
	c := &Client{
		events:   make(map[string]uint32),
		counters: make(map[string]uint32),
	}

	c.client = influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetBatchSize(20))
	c.write = c.client.WriteAPI(organization, bucket)

	go c.submit(ctx)

	return c
}

// EventHandler handles Arikawa events
func (c *Client) EventHandler(ev interface{}) {
	if c == nil {
		return
	}

	c.RegisterEvent(reflect.ValueOf(ev).Elem().Type().Name())
}

// RegisterEvent counts a single event by name.
func (c *Client) RegisterEvent(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.events[name]++
	c.mu.Unlock()
}

// Inc increments the named counter by one.
func (c *Client) Inc(counter string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.counters[counter]++
	c.mu.Unlock()
}

func (c *Client) submit(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go c.submitInner()
		case <-ctx.Done():
			c.write.Flush()
			c.client.Close()
			return
		}
	}
}

// drain returns the current counts and resets them.
func (c *Client) drain() (events, counters map[string]interface{}, total uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	events = make(map[string]interface{}, len(c.events))
	for k, v := range c.events {
		total += v
		events[k] = v
		c.events[k] = 0
	}

	counters = make(map[string]interface{}, len(c.counters))
	for k, v := range c.counters {
		counters[k] = v
		c.counters[k] = 0
	}
	return events, counters, total
}

func (c *Client) submitInner() {
	log.Debug("Submitting metrics to InfluxDB")

	events, data, total := c.drain()

	if len(events) > 0 {
		c.write.WritePoint(influxdb2.NewPoint("events", nil, events, time.Now()))
	}

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	data["events"] = total
	data["alloc"] = stats.Alloc
	data["sys"] = stats.Sys
	data["total_alloc"] = stats.TotalAlloc
	data["goroutines"] = runtime.NumGoroutine()

	sysMem, err := mem.VirtualMemory()
	if err != nil {
		log.Errorf("getting system memory: %v", err)
	} else {
		data["total_sys"] = sysMem.Used
		data["total_sys_percent"] = sysMem.UsedPercent
	}

	cpuData, err := cpu.Percent(time.Second, true)
	if err != nil {
		log.Errorf("getting cpu info: %v", err)
	} else {
		for i, d := range cpuData {
			data[fmt.Sprintf("cpu_%d", i)] = d
		}
	}

	c.write.WritePoint(influxdb2.NewPoint("statistics", nil, data, time.Now()))
}
