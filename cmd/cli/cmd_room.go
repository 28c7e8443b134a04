package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var roomCmd = &cobra.Command{
	Use:   "room",
	Short: "Room management commands",
	Long:  `Commands for managing rooms in HeatControl.`,
}

var listRoomsCmd = &cobra.Command{
	Use:   "list <email>",
	Short: "List the rooms of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runListRooms,
}

var createRoomCmd = &cobra.Command{
	Use:   "create <email> <name>",
	Short: "Create a room for a user",
	Long:  `Create a room for a user. The room starts with the default heating schedule.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCreateRoom,
}

func init() {
	rootCmd.AddCommand(roomCmd)
	roomCmd.AddCommand(listRoomsCmd)
	roomCmd.AddCommand(createRoomCmd)
}

func runListRooms(cmd *cobra.Command, args []string) error {
	dbManager := dbManagerFromContext(cmd.Context())

	user, err := dbManager.GetUserByEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	rooms, err := dbManager.ListRooms(cmd.Context(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	if len(rooms) == 0 {
		fmt.Printf("No rooms for %s\n", user.Email)
		return nil
	}

	for _, room := range rooms {
		fmt.Printf("%s  %s\n", room.ID, room.Name)
	}

	return nil
}

func runCreateRoom(cmd *cobra.Command, args []string) error {
	dbManager := dbManagerFromContext(cmd.Context())

	user, err := dbManager.GetUserByEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	room, err := dbManager.CreateRoom(cmd.Context(), user.ID, args[1])
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	fmt.Printf("Room created successfully!\n")
	fmt.Printf("ID: %s\n", room.ID)
	fmt.Printf("Name: %s\n", room.Name)

	return nil
}
