package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management commands",
	Long:  `Commands for managing users in HeatControl.`,
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long:  `Create a new user with an email, password and home coordinates.`,
	RunE:  runCreateUser,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(createUserCmd)
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	dbManager := dbManagerFromContext(cmd.Context())

	reader := bufio.NewReader(os.Stdin)

	// Get email
	fmt.Print("Enter email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	// Get password
	fmt.Print("Enter password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // New line after password input

	password := string(passwordBytes)
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	fmt.Println() // New line after password input

	if password != string(confirmBytes) {
		return fmt.Errorf("passwords do not match")
	}

	// Get home coordinates for the weather refresh loop
	latitude, err := readCoordinate(reader, "Enter latitude: ", -90, 90)
	if err != nil {
		return err
	}
	longitude, err := readCoordinate(reader, "Enter longitude: ", -180, 180)
	if err != nil {
		return err
	}

	// Create user
	user, err := dbManager.CreateUser(cmd.Context(), email, password, latitude, longitude)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User created successfully!\n")
	fmt.Printf("ID: %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Location: %.4f, %.4f\n", user.Latitude, user.Longitude)
	fmt.Printf("Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func readCoordinate(reader *bufio.Reader, prompt string, min, max float64) (float64, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("failed to read coordinate: %w", err)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate: %w", err)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("coordinate %.4f out of range [%.0f, %.0f]", value, min, max)
	}

	return value, nil
}
