// Copyright 2020 WolkAbout Technology s.r.o.

package persistence

import (
	"fmt"
	"testing"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

func TestMemQueueFIFO(t *testing.T) {
	queue := NewMemQueue()
	defer queue.Close()

	for i := 0; i < 5; i++ {
		if err := queue.Put(model.Message{Topic: fmt.Sprintf("topic/%d", i)}); err != nil {
			t.Fatal(err.Error())
		}
	}
	if queue.Size() != 5 {
		t.Fatalf("Expected size 5, got %d", queue.Size())
	}

	for i := 0; i < 5; i++ {
		got, err := queue.Get()
		if err != nil {
			t.Fatal(err.Error())
		}
		if want := fmt.Sprintf("topic/%d", i); got == nil || got.Topic != want {
			t.Fatalf("Out of order delivery: expected %s, got %v", want, got)
		}
	}
}

func TestMemQueueEmpty(t *testing.T) {
	queue := NewMemQueue()

	if msg, err := queue.Get(); err != nil || msg != nil {
		t.Fatalf("Expected nil message from empty queue, got %v, %v", msg, err)
	}
	if msg, err := queue.Peek(); err != nil || msg != nil {
		t.Fatalf("Expected nil message from empty queue, got %v, %v", msg, err)
	}
}

func TestMemQueuePeek(t *testing.T) {
	queue := NewMemQueue()

	if err := queue.Put(model.Message{Topic: "topic/head"}); err != nil {
		t.Fatal(err.Error())
	}
	msg, err := queue.Peek()
	if err != nil {
		t.Fatal(err.Error())
	}
	if msg == nil || msg.Topic != "topic/head" {
		t.Fatalf("Expected head message, got %v", msg)
	}
	if queue.Size() != 1 {
		t.Fatalf("Peek must not remove the message, size is %d", queue.Size())
	}
}
