// Package cleanup — хуки, выполняемые после каждой диспетчеризации сообщения.
package cleanup

import "github.com/Gunvolt24/kafka_consumer/internal/ports"

// Func — адаптер функции к ports.Cleaner.
type Func func()

func (f Func) CleanUp() {
	if f != nil {
		f()
	}
}

// Chain — выполняет хуки по порядку регистрации; nil пропускаются.
type Chain []ports.Cleaner

func NewChain(cleaners ...ports.Cleaner) Chain {
	out := make(Chain, 0, len(cleaners))
	for _, c := range cleaners {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (c Chain) CleanUp() {
	for _, cl := range c {
		cl.CleanUp()
	}
}
