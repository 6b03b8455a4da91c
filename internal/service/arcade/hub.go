package arcade

import (
	"sync"

	"neuroflash/internal/model"
)

const subscriberBuffer = 64

// hub Рассылка событий сессии подписчикам.
// Медленный подписчик теряет события, но не тормозит цикл сессии
type hub struct {
	mtx    sync.Mutex
	nextID int
	subs   map[int]chan model.Event
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan model.Event)}
}

// subscribe false - хаб уже закрыт
func (h *hub) subscribe() (<-chan model.Event, func(), bool) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if h.closed {
		return nil, nil, false
	}
	id := h.nextID
	h.nextID++
	ch := make(chan model.Event, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mtx.Lock()
			defer h.mtx.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel, true
}

func (h *hub) len() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return len(h.subs)
}

func (h *hub) publish(ev model.Event) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// close Закрывает все каналы подписчиков
func (h *hub) close() {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
