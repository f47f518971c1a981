package validity

import (
	"os"
	"testing"
	"time"
)

var testWorker *ValidityWorker

func TestMain(m *testing.M) {
	testWorker = NewValidityWorker("test", nil, nil, nil, time.Hour)
	testWorker.Register()
	os.Exit(m.Run())
}
