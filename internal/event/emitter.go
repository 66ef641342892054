package event

import "log"

// LogEmitter - пишет события в стандартный лог
type LogEmitter struct{}

func NewLogEmitter() *LogEmitter {
	return &LogEmitter{}
}

func (LogEmitter) Emit(e Event) {
	log.Printf("event %s: %+v", e.EventName(), e)
}

// Recorder - накапливает события в памяти, используется в тестах
type Recorder struct {
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	return r.events
}

// Last - последнее событие с данным именем, nil если не было
func (r *Recorder) Last(name string) Event {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].EventName() == name {
			return r.events[i]
		}
	}
	return nil
}
