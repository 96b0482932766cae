package domain

// User is one record of the remote user list. The shape is owned by the
// remote service; nothing here is validated or defaulted, and absent fields
// decode to zero values. Scalars are kept as Text so a number where a string
// was expected still renders.
type User struct {
	ID       Text    `json:"id"`
	Name     Text    `json:"name"`
	Username Text    `json:"username"`
	Email    Text    `json:"email"`
	Phone    Text    `json:"phone"`
	Website  Text    `json:"website"`
	Company  Company `json:"company"`
	Address  Address `json:"address"`
}

type Company struct {
	Name        Text `json:"name"`
	CatchPhrase Text `json:"catchPhrase"`
	BS          Text `json:"bs"`
}

type Address struct {
	Street  Text `json:"street"`
	Suite   Text `json:"suite"`
	City    Text `json:"city"`
	Zipcode Text `json:"zipcode"`
	Geo     Geo  `json:"geo"`
}

type Geo struct {
	Lat Text `json:"lat"`
	Lng Text `json:"lng"`
}
