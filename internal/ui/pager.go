package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PagerOps shows long documents in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager hands the terminal to ov until the user quits it
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)
	root.SetConfig(config)

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return root.Run()
}

// vimKeys are added to ov's defaults; other actions lose these keys
var vimKeys = map[string][]string{
	"down":   {"j"},
	"up":     {"k"},
	"top":    {"g"},
	"bottom": {"G"},
}

func configureVimKeyBindings(config *oviewer.Config) {
	taken := make(map[string]bool)
	for _, keys := range vimKeys {
		for _, k := range keys {
			taken[k] = true
		}
	}

	binds := make(map[string][]string)
	for action, keys := range oviewer.GetKeyBinds(*config) {
		for _, k := range keys {
			if !taken[k] {
				binds[action] = append(binds[action], k)
			}
		}
		binds[action] = append(binds[action], vimKeys[action]...)
	}
	config.Keybind = binds
}
