package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

// Menu entries offered after the fields are collected.
const (
	MenuSubmit = controller.SubmitLabel
	MenuEdit   = "Edit a field"
	MenuReset  = controller.ResetLabel
	MenuQuit   = "Quit"
)

var menuOptions = []string{MenuSubmit, MenuEdit, MenuReset, MenuQuit}

// Session drives a controller from the terminal: it collects every field,
// then loops over a small action menu until the user quits.
type Session struct {
	ctrl   *controller.Controller
	driver PromptDriver
	theme  Theme
}

// NewSession binds a controller to a prompt driver.
func NewSession(ctrl *controller.Controller, options ...Option) (*Session, error) {
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}
	cfg := newConfig(options)
	return &Session{
		ctrl:   ctrl,
		driver: cfg.driver,
		theme:  cfg.theme,
	}, nil
}

// Run prompts for the measurements and then serves the menu. It returns nil
// when the user quits and ErrAborted on interrupt.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := s.fillMissing(ctx); err != nil {
		return err
	}

	for {
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: menuOptions,
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(menuOptions) {
			return ErrNoSelection
		}

		switch menuOptions[choice] {
		case MenuSubmit:
			if err := s.submit(ctx); err != nil {
				return err
			}
		case MenuEdit:
			if err := s.edit(ctx); err != nil {
				return err
			}
		case MenuReset:
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Clear all fields?"})
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			s.ctrl.HandleReset()
			if err := s.info(ctx, "All fields cleared."); err != nil {
				return err
			}
		case MenuQuit:
			return nil
		}
	}
}

// fillMissing prompts, in registry order, for every field without a value.
func (s *Session) fillMissing(ctx context.Context) error {
	for _, def := range registry.Fields() {
		if value, _ := s.ctrl.Value(def.ID); strings.TrimSpace(value) != "" {
			continue
		}
		if err := s.promptField(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) submit(ctx context.Context) error {
	if err := s.fillMissing(ctx); err != nil {
		return err
	}
	if err := s.ctrl.HandleSubmit(ctx); err != nil {
		return fmt.Errorf("tui: submit: %w", err)
	}

	form := model.Build(s.ctrl.View())
	if form.Error != "" {
		return s.driver.Info(ctx, s.theme.ErrorPrefix+form.Error)
	}
	return s.info(ctx, strings.TrimSpace(outcomeText(form)))
}

func (s *Session) edit(ctx context.Context) error {
	fields := registry.Fields()
	options := make([]string, 0, len(fields))
	for _, def := range fields {
		value, _ := s.ctrl.Value(def.ID)
		if value == "" {
			value = "-"
		}
		options = append(options, fmt.Sprintf("%s (%s)", def.Label, value))
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:  "Which field?",
		Options:  options,
		PageSize: len(options),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(fields) {
		return ErrNoSelection
	}
	return s.promptField(ctx, fields[idx])
}

// promptField asks for a number until the answer is a finite decimal. The
// survey driver enforces the same rule inline through the validator.
func (s *Session) promptField(ctx context.Context, def registry.FieldDefinition) error {
	current, _ := s.ctrl.Value(def.ID)
	for {
		input, err := s.driver.Input(ctx, InputConfig{
			Message:   def.Label,
			Default:   current,
			Help:      "e.g. " + def.Placeholder,
			Validator: prediction.ValidateValue,
		})
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if err := prediction.ValidateValue(input); err != nil {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+fmt.Sprintf("Invalid %s: %v", def.ID, err)); err != nil {
				return err
			}
			continue
		}
		return s.ctrl.HandleChange(def.ID, input)
	}
}

func (s *Session) info(ctx context.Context, msg string) error {
	if msg == "" {
		return nil
	}
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}
