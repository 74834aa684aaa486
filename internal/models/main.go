// Package models defines the core data structures for catalog entries and accounts.
package models

// Pato is a single duck species record in the catalog.
type Pato struct {
	// ID is the unique identifier for the record. It never changes once assigned.
	ID string `json:"id"`
	// Name is the display name and the sort key of the catalog.
	Name           string `json:"name"`
	ScientificName string `json:"scientificName"`
	Description    string `json:"description"`
	Behavior       string `json:"behavior"`
	Habitat        string `json:"habitat"`
	Plumage        string `json:"plumage"`
	Diet           string `json:"diet"`
	// Group is the taxonomic group ("especie"), matched exactly by filters.
	Group string `json:"group"`
	// Image is a URL or path; it may be empty.
	Image string `json:"image"`
	// Sound is a URL or path to the species call.
	Sound string `json:"sound"`
}

// PatoInput holds every Pato field except the identifier.
type PatoInput struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientificName"`
	Description    string `json:"description"`
	Behavior       string `json:"behavior"`
	Habitat        string `json:"habitat"`
	Plumage        string `json:"plumage"`
	Diet           string `json:"diet"`
	Group          string `json:"group"`
	Image          string `json:"image"`
	Sound          string `json:"sound"`
}

// WithID builds a Pato from the input and the given identifier.
func (in PatoInput) WithID(id string) Pato {
	return Pato{
		ID:             id,
		Name:           in.Name,
		ScientificName: in.ScientificName,
		Description:    in.Description,
		Behavior:       in.Behavior,
		Habitat:        in.Habitat,
		Plumage:        in.Plumage,
		Diet:           in.Diet,
		Group:          in.Group,
		Image:          in.Image,
		Sound:          in.Sound,
	}
}

// PatoPatch is a partial update. Nil fields are left untouched.
// It has no ID field, so a patch can never change an identifier.
type PatoPatch struct {
	Name           *string `json:"name,omitempty"`
	ScientificName *string `json:"scientificName,omitempty"`
	Description    *string `json:"description,omitempty"`
	Behavior       *string `json:"behavior,omitempty"`
	Habitat        *string `json:"habitat,omitempty"`
	Plumage        *string `json:"plumage,omitempty"`
	Diet           *string `json:"diet,omitempty"`
	Group          *string `json:"group,omitempty"`
	Image          *string `json:"image,omitempty"`
	Sound          *string `json:"sound,omitempty"`
}

// Apply returns a copy of p with every set patch field written over it.
func (pp PatoPatch) Apply(p Pato) Pato {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Name, pp.Name)
	set(&p.ScientificName, pp.ScientificName)
	set(&p.Description, pp.Description)
	set(&p.Behavior, pp.Behavior)
	set(&p.Habitat, pp.Habitat)
	set(&p.Plumage, pp.Plumage)
	set(&p.Diet, pp.Diet)
	set(&p.Group, pp.Group)
	set(&p.Image, pp.Image)
	set(&p.Sound, pp.Sound)
	return p
}

// SearchFilters narrows a catalog search. Empty fields are not applied.
type SearchFilters struct {
	// Group must equal Pato.Group exactly.
	Group string `json:"group"`
	// Habitat is a case-insensitive substring of Pato.Habitat.
	Habitat string `json:"habitat"`
	// Diet is a case-insensitive substring of Pato.Diet.
	Diet string `json:"diet"`
}

// Role defines the permission level of an account.
type Role string

const (
	// RoleUser is a regular visitor.
	RoleUser Role = "user"
	// RoleAdmin can manage the catalog.
	RoleAdmin Role = "admin"
)

// Plan defines the subscription tier of an account.
type Plan string

const (
	// PlanFree is the default plan for new accounts.
	PlanFree Plan = "free"
	// PlanPaid unlocks premium features such as species sounds.
	PlanPaid Plan = "paid"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPaid
}

// User represents a registered account.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// Email is unique across the roster.
	Email string `json:"email"`
	// Username is unique across the roster.
	Username string `json:"username"`
	// Password is stored and compared in plaintext.
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Plan     Plan   `json:"plan"`
	// RegisteredAt is a calendar date in YYYY-MM-DD form.
	RegisteredAt string `json:"registeredAt"`
}

// IsAdmin reports whether the account may manage the catalog.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPremium reports whether the account is on the paid plan.
func (u User) IsPremium() bool {
	return u.Plan == PlanPaid
}

// Public returns the account without its password.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Username:     u.Username,
		Role:         u.Role,
		Plan:         u.Plan,
		RegisteredAt: u.RegisteredAt,
	}
}

// PublicUser is the account view returned over the API.
type PublicUser struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	Plan         Plan   `json:"plan"`
	RegisteredAt string `json:"registeredAt"`
}

// RegisterInput holds the profile fields supplied at registration.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}
