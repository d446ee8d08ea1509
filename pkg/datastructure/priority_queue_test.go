package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {
	return min + rand.Intn(max-min)
}

func TestPriorityQueue(t *testing.T) {
	pq := NewMinHeap[int32]()
	if pq == nil {
		t.Errorf("PriorityQueue is nil")
	}

	for i := 0; i < 10000; i++ {
		item := PriorityQueueNode[int32]{Rank: float64(generateRandomInteger(1, 10000)), Item: int32(i)}
		pq.Insert(item)

		if (i+1)%100 == 0 {
			item.Rank = float64(generateRandomInteger(0, int(item.Rank)))
			err := pq.DecreaseKey(item)
			if err != nil {
				t.Errorf("Error decrease key")
			}
		}
	}

	prevItem, err := pq.ExtractMin()
	if err != nil {
		t.Errorf("Error extract min")
	}
	for i := 1; i < 10000; i++ {
		item, err := pq.ExtractMin()
		if err != nil {
			t.Errorf("Error extract min")
		}

		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}
	assert.Equal(t, 0, pq.Size())
}

func TestPriorityQueueDecreaseKey(t *testing.T) {
	pq := NewMinHeap[int32]()

	itemSlice := make([]PriorityQueueNode[int32], 1000)
	for i := 0; i < 1000; i++ {
		item := PriorityQueueNode[int32]{Rank: float64(generateRandomInteger(10000, 100000000)), Item: int32(i)}
		pq.Insert(item)
		itemSlice[i] = item
	}

	for i := 0; i < 1000; i++ {
		itemSlice[i].Rank = float64(generateRandomInteger(0, int(itemSlice[i].Rank)))
		err := pq.DecreaseKey(itemSlice[i])
		assert.NoError(t, err)
	}

	prevItem, _ := pq.ExtractMin()
	for i := 1; i < 1000; i++ {
		item, _ := pq.ExtractMin()
		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}
}

func TestPriorityQueueEdgeCases(t *testing.T) {
	t.Run("extract from empty queue", func(t *testing.T) {
		pq := NewMinHeap[string]()
		_, err := pq.ExtractMin()
		assert.ErrorIs(t, err, ErrEmptyQueue)
		_, err = pq.GetMin()
		assert.ErrorIs(t, err, ErrEmptyQueue)
	})

	t.Run("decrease key of unknown item", func(t *testing.T) {
		pq := NewMinHeap[string]()
		err := pq.DecreaseKey(NewPriorityQueueNode(1.0, "a"))
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("insert existing item updates rank", func(t *testing.T) {
		pq := NewMinHeap[string]()
		pq.Insert(NewPriorityQueueNode(5.0, "a"))
		pq.Insert(NewPriorityQueueNode(3.0, "b"))
		pq.Insert(NewPriorityQueueNode(1.0, "a"))
		assert.Equal(t, 2, pq.Size())

		min, err := pq.GetMin()
		assert.NoError(t, err)
		assert.Equal(t, "a", min.Item)
		assert.Equal(t, 1.0, min.Rank)
	})
}

func BenchmarkPQDecreaseKey(b *testing.B) {
	pq := NewMinHeap[int32]()

	for i := 0; i < b.N; i++ {
		item := PriorityQueueNode[int32]{Rank: float64(generateRandomInteger(10000, 100000000)), Item: int32(i)}
		pq.Insert(item)
		item.Rank = float64(generateRandomInteger(0, int(item.Rank)))
		err := pq.DecreaseKey(item)
		if err != nil {
			b.Errorf("Error decrease key")
		}
	}
}
