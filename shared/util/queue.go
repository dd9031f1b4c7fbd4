package util

import "sync"

// UniqueQueue é uma fila FIFO com no máximo uma entrada por chave.
// Reenfileirar uma chave presente só troca o valor e mantém a posição original.
type UniqueQueue[K comparable, V any] struct {
	mu    sync.Mutex
	order []K
	vals  map[K]V
}

// NewUniqueQueue cria uma fila vazia.
func NewUniqueQueue[K comparable, V any]() *UniqueQueue[K, V] {
	return &UniqueQueue[K, V]{vals: make(map[K]V)}
}

// Enqueue grava o valor da chave. Retorna true se a chave entrou agora na fila.
func (q *UniqueQueue[K, V]) Enqueue(key K, value V) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, present := q.vals[key]
	q.vals[key] = value
	if present {
		return false
	}
	q.order = append(q.order, key)
	return true
}

// Dequeue remove a entrada mais antiga.
func (q *UniqueQueue[K, V]) Dequeue() (K, V, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.order) == 0 {
		var k K
		var v V
		return k, v, false
	}
	k := q.order[0]
	q.order = q.order[1:]
	v := q.vals[k]
	delete(q.vals, k)
	return k, v, true
}

// Drain esvazia a fila chamando fn em ordem de chegada.
func (q *UniqueQueue[K, V]) Drain(fn func(K, V)) {
	q.mu.Lock()
	order, vals := q.order, q.vals
	q.order = nil
	q.vals = make(map[K]V)
	q.mu.Unlock()

	for _, k := range order {
		fn(k, vals[k])
	}
}

// Len retorna quantas chaves estão na fila.
func (q *UniqueQueue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}
