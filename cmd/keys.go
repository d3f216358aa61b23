package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print freshly generated secrets for a .env file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeKeys(cmd.OutOrStdout())
		},
	}
}

func writeKeys(w io.Writer) error {
	secrets := []struct {
		env    string
		length int
	}{
		{"JWT_SECRET_KEY", 32},
		{"JWT_REFRESH_SECRET_KEY", 32},
		{"ADMIN_PASSWORD", 18},
		{"STORE_TOKEN", 24},
	}

	for _, s := range secrets {
		key, err := generateSecureKey(s.length)
		if err != nil {
			return fmt.Errorf("generate %s: %w", s.env, err)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", s.env, key); err != nil {
			return err
		}
	}
	return nil
}
