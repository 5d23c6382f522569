package catalog

import (
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/knots/knot"
	"github.com/fine-structures/knots/libknot"
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	kStateKey => CatalogState

	kDiagramPrefix, NumCrossings (byte), [4*NumCrossings]uvarint (canonical PD labels)
		=> DiagramRecord

Since the crossing count follows the prefix, iteration visits diagrams in order of increasing crossing count
and a crossing-count range is a single seek plus a bounded scan.

***/

const (
	kDiagramPrefix = 'D'
	kStateKey      = 'S'

	majorVers = 2026
	minorVers = 1
)

type catalog struct {
	ctx        knot.CatalogContext
	readOnly   bool
	mu         sync.Mutex
	stateDirty bool
	state      CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) a catalog of canonical diagrams and attaches it to ctx.
func OpenCatalog(ctx knot.CatalogContext, opts knot.CatalogOpts) (knot.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(knot.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = majorVers
		cat.state.MinorVers = minorVers
	}
	if err == nil && (cat.state.MajorVers != majorVers || cat.state.MinorVers != minorVers) {
		err = errors.Wrapf(knot.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumDiagrams(forCrossings int) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if forCrossings < 0 || forCrossings >= len(cat.state.NumDiagrams) {
		return 0
	}
	return int64(cat.state.NumDiagrams[forCrossings])
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte{kStateKey})
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &cat.state)
		})
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.readOnly {
		return nil
	}
	stateBuf, err := proto.Marshal(&cat.state)
	if err != nil {
		return err
	}
	err = cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte{kStateKey}, stateBuf)
	})
	if err != nil {
		return errors.Wrap(err, "flush catalog state")
	}
	cat.stateDirty = false
	return nil
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	cat.ctx = nil
	return err
}

// TryAddDiagram adds the canonical form of X unless an identical canonical diagram is already cataloged.
func (cat *catalog) TryAddDiagram(X knot.Diagram) (bool, error) {
	if cat.readOnly {
		return false, knot.ErrReadOnly
	}
	canon, err := X.Canonical()
	if err != nil {
		return false, err
	}

	var keyBuf [256]byte
	key, err := libknot.AppendDiagramKey(append(keyBuf[:0], kDiagramPrefix), canon.PD)
	if err != nil {
		return false, err
	}

	rec := DiagramRecord{
		Source:    libknot.FormatEncoding(X.Encoding()),
		Moves:     int32(canon.Moves),
		Crossings: int32(len(canon.PD)),
	}
	if w, err := libknot.CanonicalToBraid(canon); err == nil {
		rec.Braid = make([]int64, len(w))
		for i, g := range w {
			rec.Braid[i] = int64(g)
		}
	} else {
		klog.Warningf("no braid word for %s: %v", rec.Source, err)
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return false, errors.Wrap(knot.ErrBadCatalogParam, "catalog is closed")
	}

	added := false
	err = cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		val, err := proto.Marshal(&rec)
		if err != nil {
			return err
		}
		added = true
		return txn.Set(append([]byte(nil), key...), val)
	})
	if err != nil || !added {
		return false, err
	}

	N := len(canon.PD)
	for len(cat.state.NumDiagrams) <= N {
		cat.state.NumDiagrams = append(cat.state.NumDiagrams, 0)
	}
	cat.state.NumDiagrams[N]++
	cat.stateDirty = true
	return true, nil
}

// Select sends each cataloged diagram within the selector's bounds to onHit, in key order.
func (cat *catalog) Select(sel knot.DiagramSelector, onHit knot.OnDiagramHit) error {
	cat.mu.Lock()
	db := cat.db
	cat.mu.Unlock()
	if db == nil {
		return errors.Wrap(knot.ErrBadCatalogParam, "catalog is closed")
	}

	minN := max(sel.MinCrossings, 0)
	if minN > libknot.MaxKeyCrossings {
		return nil
	}
	maxN := libknot.MaxKeyCrossings
	if sel.MaxCrossings > 0 && sel.MaxCrossings < maxN {
		maxN = sel.MaxCrossings
	}

	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         []byte{kDiagramPrefix},
		})
		defer it.Close()

		for it.Seek([]byte{kDiagramPrefix, byte(minN)}); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			if int(key[1]) > maxN {
				break
			}

			X, err := loadDiagram(key[1:], item)
			if err != nil {
				return err
			}
			canon, _ := X.Canonical()
			if sel.SelectsCanonical(canon) {
				onHit <- X
			}
		}
		return nil
	})
}

func loadDiagram(pdKey []byte, item *badger.Item) (*libknot.Link, error) {
	pd, err := libknot.ReadDiagramKey(pdKey)
	if err != nil {
		return nil, err
	}

	var rec DiagramRecord
	err = item.Value(func(val []byte) error {
		return proto.Unmarshal(val, &rec)
	})
	if err != nil {
		return nil, errors.Wrap(err, "read diagram record")
	}

	canon := &knot.Canonical{
		PD:    pd,
		Moves: int(rec.Moves),
	}
	if canon.Circles, err = libknot.SeifertCircles(pd); err != nil {
		return nil, err
	}
	if canon.Regions, err = libknot.Regions(pd); err != nil {
		return nil, err
	}

	src, err := libknot.ParseEncoding(rec.Source)
	if err != nil {
		return nil, err
	}
	return libknot.NewLinkFromCanonical(src, canon)
}
