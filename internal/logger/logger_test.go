package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewParsesLevelAndFormat(t *testing.T) {
	log := New("debug", "json")
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter, got %T", log.Formatter)
	}
}

func TestNewFallsBackOnBadValues(t *testing.T) {
	log := New("not-a-level", "not-a-format")
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %s", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("expected text formatter fallback, got %T", log.Formatter)
	}
}
