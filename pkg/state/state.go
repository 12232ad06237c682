// Package state remembers what the explorer analyzed last, so the next
// session can offer it again.
package state

import (
	"os"
	"path/filepath"

	"github.com/filetug/extcensus/pkg/fsutils"
	"github.com/sirupsen/logrus"
)

const defaultStateDir = "~/.extcensus"
const stateFileName = "state.json"

var stateDirPath = fsutils.ExpandHome(defaultStateDir)

type State struct {
	LastPath string `json:"last_path,omitempty"`
}

func getStateFilePath() string {
	return filepath.Join(stateDirPath, stateFileName)
}

var (
	readJSON  = fsutils.ReadJSONFile
	writeJSON = fsutils.WriteJSONFile
)

func GetState() (*State, error) {
	var state State
	return &state, readJSON(getStateFilePath(), false, &state)
}

// GetLastPath returns the last analyzed path, or "" when nothing was saved.
func GetLastPath() string {
	var state State
	if err := readJSON(getStateFilePath(), false, &state); err != nil {
		logrus.WithError(err).Debug("failed to read state file")
	}
	return state.LastPath
}

func SaveLastPath(path string) {
	saveStateValue(func(state *State) {
		state.LastPath = path
	})
}

func saveStateValue(f func(state *State)) {
	filePath := getStateFilePath()
	log := logrus.WithField("path", filePath)

	var state State
	if err := readJSON(filePath, false, &state); err != nil {
		log.WithError(err).Warn("failed to read state file")
	}

	if dirInfo, err := os.Stat(stateDirPath); err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("failed to check state directory")
			return
		}
		if err = os.MkdirAll(stateDirPath, 0o755); err != nil {
			log.WithError(err).Warn("failed to create state directory")
			return
		}
	} else if !dirInfo.IsDir() {
		log.Warn("state directory is not a directory")
		return
	}

	f(&state)
	if err := writeJSON(filePath, state); err != nil {
		log.WithError(err).Warn("failed to write state file")
	}
}
