//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// company mirrors the JSON objects the store serves
type company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// CreateTestWorkspace creates a temporary directory for config, data and logs
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	if err := os.MkdirAll(tf.DataDir(), 0755); err != nil {
		return "", err
	}
	return tf.workspace, nil
}

// DataDir is where the file store keeps its JSON files
func (tf *TUITestFramework) DataDir() string {
	return filepath.Join(tf.workspace, "data")
}

// WriteCatalog writes the catalog file the store serves
func (tf *TUITestFramework) WriteCatalog(companies ...company) error {
	data, err := json.Marshal(companies)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tf.DataDir(), "catalog.json"), data, 0644)
}

// ReadSelection reads the persisted selection file
func (tf *TUITestFramework) ReadSelection() ([]company, error) {
	data, err := os.ReadFile(filepath.Join(tf.DataDir(), "selected-companies.json"))
	if err != nil {
		return nil, err
	}
	var out []company
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StartServer runs the store on a free local port and waits until it answers
func (tf *TUITestFramework) StartServer() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	addr := ln.Addr().String()
	ln.Close()

	tf.server = exec.Command(binPath, "serve", "--addr", addr)
	tf.server.Env = tf.env()
	if err := tf.server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	tf.serverURL = "http://" + addr

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(tf.serverURL + "/")
		if err == nil {
			resp.Body.Close()
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server on %s did not come up", addr)
}
