// Package sendqueue implements the two-tier host/firmware follow-on
// message queue described in §4.4: a host queue ordered by arrival_seq,
// and a firmware queue keyed by transaction id and iterated in insertion
// order. It is a pure data structure — HAL calls, callback invocation and
// timer arming are the manager's job.
package sendqueue

import (
	"time"
)

// Message is one follow-on L2 message, either sitting in the host queue or
// accepted into the firmware queue.
type Message struct {
	ArrivalSeq    uint64
	ClientID      uint32
	SessionID     uint32
	PeerID        uint32
	Payload       []byte
	MessageID     uint32
	RetryCount    int
	EnqueueTime   time.Time
	TransactionID uint16
}

// Queue owns both tiers and the Blocked back-pressure flag.
type Queue struct {
	host           []*Message
	firmware       []*Message
	firmwareByTxID map[uint16]*Message
	nextArrivalSeq uint64
	blocked        bool
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{firmwareByTxID: make(map[uint16]*Message)}
}

// Enqueue assigns the next arrival_seq and inserts msg into the host
// queue, keeping it sorted ascending by arrival_seq.
func (q *Queue) Enqueue(msg *Message) *Message {
	q.nextArrivalSeq++
	msg.ArrivalSeq = q.nextArrivalSeq

	q.insertHostSorted(msg)

	return msg
}

// Requeue re-inserts msg into the host queue under its existing
// arrival_seq, preserving FIFO position across retries (§4.4 edge case).
func (q *Queue) Requeue(msg *Message) {
	msg.TransactionID = 0
	q.insertHostSorted(msg)
}

func (q *Queue) insertHostSorted(msg *Message) {
	i := 0
	for i < len(q.host) && q.host[i].ArrivalSeq < msg.ArrivalSeq {
		i++
	}

	q.host = append(q.host, nil)
	copy(q.host[i+1:], q.host[i:])
	q.host[i] = msg
}

// PopHost removes and returns the smallest-arrival_seq host queue entry.
func (q *Queue) PopHost() (*Message, bool) {
	if len(q.host) == 0 {
		return nil, false
	}

	msg := q.host[0]
	q.host = q.host[1:]

	return msg, true
}

// HostLen reports how many messages sit in the host queue.
func (q *Queue) HostLen() int {
	return len(q.host)
}

// Blocked reports whether transmit-next is currently suppressed.
func (q *Queue) Blocked() bool {
	return q.blocked
}

// SetBlocked sets the Blocked back-pressure flag.
func (q *Queue) SetBlocked(blocked bool) {
	q.blocked = blocked
}

// AcceptIntoFirmware records msg as accepted by firmware under txID,
// stamping its enqueue_time to now.
func (q *Queue) AcceptIntoFirmware(msg *Message, txID uint16, now time.Time) {
	msg.TransactionID = txID
	msg.EnqueueTime = now

	q.firmware = append(q.firmware, msg)
	q.firmwareByTxID[txID] = msg
}

// RemoveFromFirmware removes and returns the entry for txID. ok is false
// if no such entry exists — tolerated per §4.4 (late notification after
// timeout expiry already removed it).
func (q *Queue) RemoveFromFirmware(txID uint16) (*Message, bool) {
	msg, ok := q.firmwareByTxID[txID]
	if !ok {
		return nil, false
	}

	delete(q.firmwareByTxID, txID)

	for i, m := range q.firmware {
		if m == msg {
			q.firmware = append(q.firmware[:i], q.firmware[i+1:]...)
			break
		}
	}

	return msg, true
}

// FirmwareLen reports how many messages are currently accepted by firmware.
func (q *Queue) FirmwareLen() int {
	return len(q.firmware)
}

// FirmwareInOrder returns the firmware queue in insertion order. The slice
// is owned by the caller; mutating it does not affect the queue.
func (q *Queue) FirmwareInOrder() []*Message {
	out := make([]*Message, len(q.firmware))
	copy(out, q.firmware)

	return out
}

// NextTimeoutDeadline returns first_fw_enqueue_time + SendMessageTimeout,
// where first is the smallest-enqueue_time entry in the firmware queue.
// ok is false when the firmware queue is empty.
func (q *Queue) NextTimeoutDeadline(sendTimeout time.Duration) (time.Time, bool) {
	if len(q.firmware) == 0 {
		return time.Time{}, false
	}

	earliest := q.firmware[0].EnqueueTime

	for _, m := range q.firmware[1:] {
		if m.EnqueueTime.Before(earliest) {
			earliest = m.EnqueueTime
		}
	}

	return earliest.Add(sendTimeout), true
}

// ExpireDue examines the firmware queue in insertion order and removes
// every entry that has timed out. Per §4.4: the first entry is always
// expired to guarantee forward progress even under a clock that never
// advances past the deadline exactly, and every subsequent entry whose
// enqueue_time+timeout <= now is expired too, stopping at the first entry
// that is not yet due.
func (q *Queue) ExpireDue(now time.Time, sendTimeout time.Duration) []*Message {
	if len(q.firmware) == 0 {
		return nil
	}

	expired := []*Message{q.firmware[0]}

	cut := 1
	for cut < len(q.firmware) {
		m := q.firmware[cut]
		if m.EnqueueTime.Add(sendTimeout).After(now) {
			break
		}

		expired = append(expired, m)
		cut++
	}

	q.firmware = q.firmware[cut:]

	for _, m := range expired {
		delete(q.firmwareByTxID, m.TransactionID)
	}

	return expired
}

// Clear empties both tiers and resets Blocked, the NAN-DOWN reset (§7).
func (q *Queue) Clear() {
	q.host = nil
	q.firmware = nil
	q.firmwareByTxID = make(map[uint16]*Message)
	q.blocked = false
}
