// Package testnode serves a minimal in-process node API for tests.
package testnode

import (
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/minio/sha256-simd"

	"github.com/spacemeshos/solflood/types"
)

// BasePath is the prefix the API is mounted under.
const BasePath = "/testnet"

// Submission is a solution received by the node together with the verdict.
type Submission struct {
	Solution types.Solution
	Accepted bool
}

// Node is a fake chain of blocks 0..tip.
type Node struct {
	server *httptest.Server

	mu           sync.Mutex
	blocks       []types.Block
	proofTarget  uint64
	submitStatus int
	latestStatus int
	verify       func(*types.Solution, uint64) error
	submissions  []Submission
}

// New starts a node whose tip is at `height`. It is closed on test cleanup.
func New(tb testing.TB, height uint32, proofTarget uint64) *Node {
	n := &Node{proofTarget: proofTarget}
	n.grow(height)

	r := mux.NewRouter()
	api := r.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/block/latest", n.latestBlock).Methods(http.MethodGet)
	api.HandleFunc("/block/{height:[0-9]+}", n.blockByHeight).Methods(http.MethodGet)
	api.HandleFunc("/solution/broadcast", n.broadcast).Methods(http.MethodPost)

	n.server = httptest.NewServer(r)
	tb.Cleanup(n.server.Close)
	return n
}

// URL is the API root to hand to a client.
func (n *Node) URL() string {
	return n.server.URL + BasePath
}

// Extend moves the tip to `height`.
func (n *Node) Extend(height uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.grow(height)
}

func (n *Node) grow(height uint32) {
	for h := uint32(len(n.blocks)); h <= height; h++ {
		var prev types.Hash
		if h > 0 {
			prev = n.blocks[h-1].Hash
		}
		var block types.Block
		block.Hash = HashAt(h)
		block.Previous = prev
		block.Header.Metadata.Height = h
		block.Header.Metadata.ProofTarget = n.proofTarget
		block.Header.Metadata.CoinbaseTarget = n.proofTarget * 4
		block.Header.Metadata.Timestamp = 1_700_000_000 + int64(h)*15
		n.blocks = append(n.blocks, block)
	}
}

// HashAt is the hash of the block at the given height.
func HashAt(height uint32) types.Hash {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], height)
	return sha256.Sum256(buf[:])
}

// Block returns the block at the given height.
func (n *Node) Block(height uint32) types.Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.blocks[height]
}

// SetVerifier makes the node reject solutions failing verify.
func (n *Node) SetVerifier(verify func(*types.Solution, uint64) error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verify = verify
}

// FailSubmissions answers every broadcast with the given status. 0 restores normal behavior.
func (n *Node) FailSubmissions(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitStatus = status
}

// FailLatest answers /block/latest with the given status. 0 restores normal behavior.
func (n *Node) FailLatest(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latestStatus = status
}

// Submissions returns all broadcasts received so far, in arrival order.
func (n *Node) Submissions() []Submission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Submission(nil), n.submissions...)
}

func (n *Node) latestBlock(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	status := n.latestStatus
	tip := n.blocks[len(n.blocks)-1]
	n.mu.Unlock()

	if status != 0 {
		http.Error(w, "node unavailable", status)
		return
	}
	writeJSON(w, &tip)
}

func (n *Node) blockByHeight(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseUint(mux.Vars(r)["height"], 10, 32)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if height >= uint64(len(n.blocks)) {
		http.Error(w, "block not found", http.StatusNotFound)
		return
	}
	writeJSON(w, &n.blocks[height])
}

func (n *Node) broadcast(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var solution types.Solution
	if err := json.Unmarshal(data, &solution); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	accepted := n.submitStatus == 0
	if accepted && n.verify != nil {
		accepted = n.verify(&solution, n.proofTarget) == nil
	}
	n.submissions = append(n.submissions, Submission{Solution: solution, Accepted: accepted})

	switch {
	case n.submitStatus != 0:
		http.Error(w, "rejected", n.submitStatus)
	case !accepted:
		http.Error(w, "invalid solution", http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
