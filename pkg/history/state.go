/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

const (
	SnapshotBucket = "snapshots"
	OpenTimeout    = time.Second
)

var ErrEmptyName = errors.New("Snapshot name must not be empty")

type ErrSnapshotNotFound struct {
	Name string
}

func (e ErrSnapshotNotFound) Error() string {
	return fmt.Sprintf("Snapshot not found: %s", e.Name)
}

// Snapshot is a named input buffer kept together with the structure it was decoded as
// and the naming options of that decode
type Snapshot struct {
	Name          string    `json:"name"`
	Kind          xhci.Kind `json:"kind"`
	Data          []byte    `json:"data"`
	Head          string    `json:"head,omitempty"`
	EndpointIndex *int      `json:"endpointIndex,omitempty"`
	Created       time.Time `json:"created"`
}

// Options returns the decode options the snapshot was saved with
func (s *Snapshot) Options() []xhci.Option {
	opts := []xhci.Option{xhci.WithHead(s.Head)}
	if s.EndpointIndex != nil {
		opts = append(opts, xhci.WithEndpointIndex(*s.EndpointIndex))
	}
	return opts
}

// Decode decodes the stored data again
func (s *Snapshot) Decode() (*xhci.Result, error) {
	return xhci.Decode(s.Kind, s.Data, s.Options()...)
}

type State struct {
	DB *bbolt.DB
}

func NewState(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("Couldn't open history database %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(SnapshotBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &State{DB: db}, nil
}

// Close ...
func (s *State) Close() error {
	return s.DB.Close()
}

// Save stores a snapshot, replacing any snapshot with the same name
func (s *State) Save(snapshot *Snapshot) error {
	if snapshot.Name == "" {
		return ErrEmptyName
	}
	if snapshot.Created.IsZero() {
		snapshot.Created = time.Now().UTC()
	}
	log.Debug("Saving snapshot: name: %s kind: %s size: %d", snapshot.Name, snapshot.Kind.Code(), len(snapshot.Data))
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(SnapshotBucket)).Put([]byte(snapshot.Name), data)
	})
}

// Get ...
func (s *State) Get(name string) (*Snapshot, error) {
	log.Debug("Getting snapshot: name: %s", name)
	snapshot := &Snapshot{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(SnapshotBucket)).Get([]byte(name))
		if data == nil {
			return ErrSnapshotNotFound{Name: name}
		}
		return yaml.Unmarshal(data, snapshot)
	}); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// List returns all snapshots ordered by name
func (s *State) List() ([]*Snapshot, error) {
	log.Debug("Getting all snapshots")
	snapshots := []*Snapshot{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(SnapshotBucket)).ForEach(func(k, v []byte) error {
			snapshot := &Snapshot{}
			if err := yaml.Unmarshal(v, snapshot); err != nil {
				log.Error("Error while unmarshalling snapshot %s: %s", k, err)
				return err
			}
			snapshots = append(snapshots, snapshot)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Delete ...
func (s *State) Delete(name string) error {
	log.Debug("Deleting snapshot: name: %s", name)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(SnapshotBucket))
		if b.Get([]byte(name)) == nil {
			return ErrSnapshotNotFound{Name: name}
		}
		return b.Delete([]byte(name))
	})
}
