package memory_test

import (
	"testing"

	"github.com/procwise/procwise/pkg/adapters/memory"
	"github.com/procwise/procwise/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunProcessStoreContract(t, memory.NewStore())
}
