package validate

import (
	"fmt"
	"strings"
)

func Title(title string) error {
	if len(strings.TrimSpace(title)) == 0 {
		return fmt.Errorf("%s", "title can't be empty")
	}

	return nil
}

func Author(author string) error {
	if len(strings.TrimSpace(author)) == 0 {
		return fmt.Errorf("%s", "author can't be empty")
	}

	return nil
}
