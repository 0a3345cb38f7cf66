// Copyright 2020 WolkAbout Technology s.r.o.

package persistence

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wolkabout/wolk-gateway-module-go/model"
)

func setupLevelDB() (*LevelDBQueue, string, error) {
	// Temp database file
	// Replace Windows-based backslashes with slash (not parsed as Path by net/url)
	os_temp := strings.Replace(os.TempDir(), "\\", "/", -1)
	dbName := fmt.Sprintf("%d.ldb", time.Now().UnixNano())
	temp_file := fmt.Sprintf("%s/wolk-test/%s", os_temp, dbName)

	queue, err := NewLevelDBQueue(temp_file, nil)
	if err != nil {
		return nil, dbName, err
	}
	return queue, dbName, nil
}

// Remove temporary database files
func clean(dbName string) {
	temp_dir := fmt.Sprintf("%s/wolk-test/%s", os.TempDir(), dbName)
	err := os.RemoveAll(temp_dir)
	if err != nil {
		fmt.Println(err.Error())
	}
}

func TestLevelDBPutGet(t *testing.T) {
	queue, dbName, err := setupLevelDB()
	if err != nil {
		t.Fatal(err.Error())
	}
	defer clean(dbName)
	defer queue.Close()

	msg := model.Message{Topic: "d2p/sensor_reading/d/DEV1/r/T", Payload: []byte(`{"data":"25.6"}`)}
	if err := queue.Put(msg); err != nil {
		t.Fatalf("Received unexpected error on put: %v", err.Error())
	}
	if queue.Size() != 1 {
		t.Fatalf("Expected size 1, got %d", queue.Size())
	}

	got, err := queue.Get()
	if err != nil {
		t.Fatalf("Received unexpected error on get: %v", err.Error())
	}
	if got == nil {
		t.Fatal("Expected a message, got nil")
	}
	if got.Topic != msg.Topic || string(got.Payload) != string(msg.Payload) {
		t.Fatalf("Mismatch:\n stored:\n%v\n retrieved:\n%v\n", msg, *got)
	}
	if queue.Size() != 0 {
		t.Fatalf("Expected size 0 after get, got %d", queue.Size())
	}
}

func TestLevelDBOrder(t *testing.T) {
	queue, dbName, err := setupLevelDB()
	if err != nil {
		t.Fatal(err.Error())
	}
	defer clean(dbName)
	defer queue.Close()

	for i := 0; i < 10; i++ {
		msg := model.Message{Topic: fmt.Sprintf("topic/%d", i)}
		if err := queue.Put(msg); err != nil {
			t.Fatalf("Received unexpected error on put: %v", err.Error())
		}
	}

	for i := 0; i < 10; i++ {
		got, err := queue.Get()
		if err != nil {
			t.Fatalf("Received unexpected error on get: %v", err.Error())
		}
		if got == nil {
			t.Fatalf("Queue ran out of messages at %d", i)
		}
		if want := fmt.Sprintf("topic/%d", i); got.Topic != want {
			t.Fatalf("Out of order delivery: expected %s, got %s", want, got.Topic)
		}
	}
}

func TestLevelDBPeek(t *testing.T) {
	queue, dbName, err := setupLevelDB()
	if err != nil {
		t.Fatal(err.Error())
	}
	defer clean(dbName)
	defer queue.Close()

	if msg, err := queue.Peek(); err != nil || msg != nil {
		t.Fatalf("Expected nil message from empty queue, got %v, %v", msg, err)
	}

	if err := queue.Put(model.Message{Topic: "topic/head"}); err != nil {
		t.Fatal(err.Error())
	}

	for i := 0; i < 2; i++ {
		msg, err := queue.Peek()
		if err != nil {
			t.Fatalf("Received unexpected error on peek: %v", err.Error())
		}
		if msg == nil || msg.Topic != "topic/head" {
			t.Fatalf("Expected head message, got %v", msg)
		}
	}
	if queue.Size() != 1 {
		t.Fatalf("Peek must not remove the message, size is %d", queue.Size())
	}
}

func TestLevelDBGetEmpty(t *testing.T) {
	queue, dbName, err := setupLevelDB()
	if err != nil {
		t.Fatal(err.Error())
	}
	defer clean(dbName)
	defer queue.Close()

	msg, err := queue.Get()
	if err != nil {
		t.Fatalf("Received unexpected error on get: %v", err.Error())
	}
	if msg != nil {
		t.Fatalf("Expected nil message from empty queue, got %v", msg)
	}
}

func TestLevelDBReopen(t *testing.T) {
	queue, dbName, err := setupLevelDB()
	if err != nil {
		t.Fatal(err.Error())
	}
	defer clean(dbName)

	for i := 0; i < 3; i++ {
		if err := queue.Put(model.Message{Topic: fmt.Sprintf("topic/%d", i)}); err != nil {
			t.Fatal(err.Error())
		}
	}
	// drop the head so reopening starts mid-sequence
	if _, err := queue.Get(); err != nil {
		t.Fatal(err.Error())
	}
	if err := queue.Close(); err != nil {
		t.Fatal(err.Error())
	}

	temp_file := fmt.Sprintf("%s/wolk-test/%s", strings.Replace(os.TempDir(), "\\", "/", -1), dbName)
	reopened, err := NewLevelDBQueue(temp_file, nil)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer reopened.Close()

	if reopened.Size() != 2 {
		t.Fatalf("Expected 2 messages after reopen, got %d", reopened.Size())
	}
	got, err := reopened.Get()
	if err != nil {
		t.Fatal(err.Error())
	}
	if got.Topic != "topic/1" {
		t.Fatalf("Expected topic/1 at the head after reopen, got %s", got.Topic)
	}
}
