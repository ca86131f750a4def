package atom

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// An Event records one mutation of the interning table: an "insert" when
// a fresh entry is created (with the interned string attached), an
// "intern" when a constructor joins an existing entry, and a "remove"
// when an entry is reclaimed. Clones are not recorded; they do not touch
// the table.
type Event struct {
	Event  string `json:"event"`
	ID     uint64 `json:"id"`
	String string `json:"string,omitempty"`
}

const (
	internEvent = "intern"
	insertEvent = "insert"
	removeEvent = "remove"
)

var eventLog struct {
	enabled int32
	mutex   sync.Mutex
	session string
	events  []Event
}

// StartEventLog begins recording table events and returns an identifier
// for the recording session, so that event streams collected from
// multiple runs remain distinguishable after merging.
//
// Event recording is meant for debugging and workload analysis; it is off
// by default and serializes all table mutations while enabled.
func StartEventLog() string {
	eventLog.mutex.Lock()
	eventLog.session = uuid.New().String()
	eventLog.events = make([]Event, 0, 50000)
	atomic.StoreInt32(&eventLog.enabled, 1)
	session := eventLog.session
	eventLog.mutex.Unlock()
	return session
}

// StopEventLog stops recording and returns the session identifier along
// with the recorded events, in order.
func StopEventLog() (string, []Event) {
	atomic.StoreInt32(&eventLog.enabled, 0)
	eventLog.mutex.Lock()
	session := eventLog.session
	events := eventLog.events
	eventLog.session = ""
	eventLog.events = nil
	eventLog.mutex.Unlock()
	return session, events
}

func logEvent(kind string, id uint64, s string) {
	if atomic.LoadInt32(&eventLog.enabled) == 0 {
		return
	}
	eventLog.mutex.Lock()
	if eventLog.events != nil {
		eventLog.events = append(eventLog.events, Event{Event: kind, ID: id, String: s})
	}
	eventLog.mutex.Unlock()
}
