package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func PromptString(prompt string, def string) string {
	fmt.Printf("%s (%s): ", prompt, def)

	response := readLine()
	if response == "" {
		return def
	}
	return response
}

func PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Printf("%s (Y/n): ", prompt)
	} else {
		fmt.Printf("%s (y/N): ", prompt)
	}

	response := readLine()
	if response == "" {
		return def
	}
	return strings.EqualFold(response, "y")
}

func readLine() string {
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(response)
}
