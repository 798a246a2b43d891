package models

import "fmt"

// Person represents one roster member eligible to win prizes.
// The roster is loaded once per session and members are identified by PersonID.
type Person struct {
	PersonID   string `bson:"personId" json:"person_id"`
	Name       string `bson:"name" json:"name"`
	Department string `bson:"department" json:"department"`
}

// ValidatePeople checks a roster at the load boundary: ids, names and
// departments must be non-empty and ids must be unique. The engine itself
// assumes a valid roster.
func ValidatePeople(people []*Person) error {
	seen := make(map[string]bool, len(people))
	for _, person := range people {
		if person.PersonID == "" || person.Name == "" {
			return fmt.Errorf("invalid participant entry: id=%q name=%q", person.PersonID, person.Name)
		}
		if person.Department == "" {
			return fmt.Errorf("participant %s is missing a department", person.PersonID)
		}
		if seen[person.PersonID] {
			return fmt.Errorf("duplicate participant id: %s", person.PersonID)
		}
		seen[person.PersonID] = true
	}
	return nil
}
