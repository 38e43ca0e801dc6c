// Package positions consumes the external vehicle feed over NATS and
// applies it to the catalog. The core does not validate plausibility of
// movement; whatever the feed says the position is, it is.
package positions

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/eta"
	"github.com/routeradar/bus-booking-system/internal/metrics"
	"github.com/routeradar/bus-booking-system/internal/websocket"
)

// PositionUpdate is the position message published by the feed.
type PositionUpdate struct {
	TripID    string    `json:"tripId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// ArrivalEvent reports an observed arrival at a stop, used to grow the
// historical punctuality statistics behind ETA predictions.
type ArrivalEvent struct {
	TripID       string    `json:"tripId"`
	StopID       string    `json:"stopId"`
	ArrivalTime  time.Time `json:"arrivalTime"`
	DelayMinutes float64   `json:"delayMinutes"`
}

// Feed is the NATS subscriber applying position and arrival messages to the
// in-process state. hub, recorder and collector may be nil.
type Feed struct {
	nc        *nats.Conn
	store     *catalog.Store
	hub       *websocket.Hub
	recorder  *eta.PunctualityRecorder
	collector *metrics.Collector
	subs      []*nats.Subscription
}

// Connect dials NATS with reconnect logging and returns a feed bound to the
// given collaborators.
func Connect(url string, store *catalog.Store, hub *websocket.Hub, recorder *eta.PunctualityRecorder, collector *metrics.Collector) (*Feed, error) {
	setConnected := func(up bool) {
		if collector == nil {
			return
		}
		if up {
			collector.NATSConnected.Set(1)
		} else {
			collector.NATSConnected.Set(0)
		}
	}

	nc, err := nats.Connect(url,
		nats.Name("bus-booking-system"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			setConnected(false)
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			setConnected(true)
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			setConnected(false)
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	setConnected(true)
	return &Feed{nc: nc, store: store, hub: hub, recorder: recorder, collector: collector}, nil
}

// Start subscribes to the position and arrival subjects.
func (f *Feed) Start(positionSubject, arrivalSubject string) error {
	sub, err := f.nc.Subscribe(positionSubject, f.handlePosition)
	if err != nil {
		return err
	}
	f.subs = append(f.subs, sub)

	sub, err = f.nc.Subscribe(arrivalSubject, f.handleArrival)
	if err != nil {
		return err
	}
	f.subs = append(f.subs, sub)
	log.Printf("position feed subscribed on %s, arrivals on %s", positionSubject, arrivalSubject)
	return nil
}

func (f *Feed) handlePosition(msg *nats.Msg) {
	var update PositionUpdate
	if err := json.Unmarshal(msg.Data, &update); err != nil {
		log.Printf("position feed: malformed message on %s: %v", msg.Subject, err)
		return
	}
	if err := f.store.UpdatePosition(update.TripID, update.Lat, update.Lng); err != nil {
		log.Printf("position feed: unknown trip %s", update.TripID)
		return
	}
	if f.collector != nil {
		f.collector.PositionUpdates.Inc()
	}
	if f.hub != nil {
		trip, err := f.store.GetTrip(update.TripID)
		if err == nil {
			f.hub.BroadcastPositionUpdate(trip.Snapshot())
		}
	}
}

func (f *Feed) handleArrival(msg *nats.Msg) {
	var event ArrivalEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("position feed: malformed arrival on %s: %v", msg.Subject, err)
		return
	}
	if f.recorder == nil {
		return
	}
	trip, err := f.store.GetTrip(event.TripID)
	if err != nil {
		log.Printf("position feed: arrival for unknown trip %s", event.TripID)
		return
	}
	f.recorder.Observe(trip.RouteID, event.StopID, eta.PunctualitySample{
		TripID:       event.TripID,
		ArrivalTime:  event.ArrivalTime,
		DelayMinutes: event.DelayMinutes,
	})
}

// Close drains the subscriptions and the connection.
func (f *Feed) Close() {
	for _, sub := range f.subs {
		_ = sub.Drain()
	}
	if f.nc != nil {
		f.nc.Drain()
		f.nc.Close()
	}
}
