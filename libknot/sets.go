package libknot

import (
	"encoding/binary"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/knots/knot"
	"github.com/pkg/errors"
)

// MaxKeyCrossings is the largest crossing count a diagram key can hold.
const MaxKeyCrossings = 255

// AppendDiagramKey appends the key of a canonical PD code: its crossing count (one byte) followed by every label
// as a uvarint.  Keys of diagrams with fewer crossings sort first.
func AppendDiagramKey(key []byte, pd knot.PDCode) ([]byte, error) {
	if len(pd) > MaxKeyCrossings {
		return nil, errors.Wrapf(knot.ErrTooManyCrossings, "%d crossings exceeds %d", len(pd), MaxKeyCrossings)
	}
	key = append(key, byte(len(pd)))
	for _, c := range pd {
		for _, x := range c {
			key = binary.AppendUvarint(key, uint64(x))
		}
	}
	return key, nil
}

// ReadDiagramKey is the inverse of AppendDiagramKey.
func ReadDiagramKey(key []byte) (knot.PDCode, error) {
	if len(key) == 0 {
		return nil, errors.Wrap(knot.ErrBadEncoding, "empty diagram key")
	}
	pd := make(knot.PDCode, key[0])
	buf := key[1:]
	for i := range pd {
		for p := 0; p < 4; p++ {
			x, n := binary.Uvarint(buf)
			if n <= 0 {
				return nil, errors.Wrapf(knot.ErrBadEncoding, "diagram key truncated at crossing %d", i)
			}
			pd[i][p] = int(x)
			buf = buf[n:]
		}
	}
	if len(buf) != 0 {
		return nil, errors.Wrapf(knot.ErrBadEncoding, "%d trailing bytes in diagram key", len(buf))
	}
	return pd, nil
}

// NewDropDupes returns an in-memory DiagramAdder that admits each canonical diagram once.
// Call Close() to release its resources.
func NewDropDupes() *DropDupes {
	return &DropDupes{}
}

type DropDupes struct {
	mu sync.Mutex
	db *badger.DB
}

func (set *DropDupes) autoOpen() error {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			return errors.Wrap(err, "open dedupe set")
		}
	}
	return nil
}

func (set *DropDupes) TryAddDiagram(X knot.Diagram) (bool, error) {
	canon, err := X.Canonical()
	if err != nil {
		return false, err
	}
	var keyBuf [128]byte
	key, err := AppendDiagramKey(keyBuf[:0], canon.PD)
	if err != nil {
		return false, err
	}
	return set.tryAdd(key)
}

func (set *DropDupes) tryAdd(key []byte) (bool, error) {
	set.mu.Lock()
	defer set.mu.Unlock()
	if err := set.autoOpen(); err != nil {
		return false, err
	}

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			// already present
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(append([]byte(nil), key...), nil)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Close removes all previously added diagrams.
func (set *DropDupes) Close() {
	set.mu.Lock()
	defer set.mu.Unlock()
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
