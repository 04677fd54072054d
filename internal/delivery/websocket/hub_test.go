package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"clinic-booking-api/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub(logrus.New())
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client

	hub.Publish(&service.BoardEvent{
		Type:     service.BoardEventBookingCreated,
		DoctorID: 7,
		Date:     "2025-03-09",
	})

	select {
	case raw := <-client.send:
		var event service.BoardEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, service.BoardEventBookingCreated, event.Type)
		assert.Equal(t, 7, event.DoctorID)
	case <-time.After(time.Second):
		t.Fatal("expected broadcast message")
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(logrus.New())
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client
	hub.unregister <- client

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("expected send channel to close")
	}
}

func TestHubDropsSlowConsumers(t *testing.T) {
	hub := NewHub(logrus.New())
	go hub.Run()

	// Unbuffered send channel with no reader simulates a stuck client
	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow

	hub.Publish(&service.BoardEvent{Type: service.BoardEventSlotUpdated})

	select {
	case _, open := <-slow.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("expected slow client to be dropped")
	}
}
