package cli

import (
	"fmt"
	"os"

	"github.com/terraincognita07/quitpath/internal/security"
)

const (
	minSecretKeyLength = 32
	secretAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

type SecretCmd struct {
	Length int `help:"Number of characters to generate." default:"48"`
}

func (cmd *SecretCmd) Run() error {
	secret, err := generateSecretKey(cmd.Length)
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}
	fmt.Fprintf(os.Stdout, "SECRET_KEY=%s\n", secret)
	return nil
}

func generateSecretKey(length int) (string, error) {
	if length < minSecretKeyLength {
		length = minSecretKeyLength
	}
	return security.RandomString(length, secretAlphabet)
}
