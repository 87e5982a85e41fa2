package control

import "testing"

func TestQueueDrainReturnsArrivalOrder(t *testing.T) {
	q := NewQueue(4)
	q.Enqueue(Command{Kind: Pause})
	q.Enqueue(Command{Kind: Resume})
	q.Enqueue(Command{Kind: ChangeScene, ID: 3})

	got := q.Drain()
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if got[0].Kind != Pause || got[1].Kind != Resume || got[2].Kind != ChangeScene || got[2].ID != 3 {
		t.Errorf("got = %+v, order not preserved", got)
	}
}

func TestQueueDrainEmptiesQueue(t *testing.T) {
	q := NewQueue(4)
	q.Enqueue(Command{Kind: Pause})
	_ = q.Drain()

	if got := q.Drain(); len(got) != 0 {
		t.Errorf("second Drain() = %+v, want empty", got)
	}
}

func TestQueueEnqueueDropsWhenFull(t *testing.T) {
	q := NewQueue(1)
	q.Enqueue(Command{Kind: Pause})
	q.Enqueue(Command{Kind: Resume}) // dropped, queue full; must not block

	got := q.Drain()
	if len(got) != 1 || got[0].Kind != Pause {
		t.Errorf("got = %+v, want only the first command", got)
	}
}
