package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var logoutYes bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Autentica a sessão local",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()
		a.gate.Login()
		fmt.Println("Sessão autenticada.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Encerra a sessão local",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()

		if !logoutYes {
			confirm := promptui.Prompt{
				Label:     "Encerrar a sessão",
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					return nil
				}
				return err
			}
		}
		a.gate.Logout()
		fmt.Println("Sessão encerrada.")
		return nil
	},
}

func init() {
	logoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "skip confirmation")
}
