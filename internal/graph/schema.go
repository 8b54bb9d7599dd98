package graph

const schemaSDL = `
schema {
	query: Query
	mutation: Mutation
}

type Room {
	id: ID!
	name: String!
	type: String!
	pricePerNight: Float!
	features: [String]!
	availability: Boolean!
}

type Customer {
	id: ID!
	name: String!
	email: String!
	phone: String!
}

# customer and room are null when the referenced record no longer exists.
type Booking {
	id: ID!
	customer: Customer
	room: Room
	startDate: String!
	endDate: String!
	nights: Int!
	totalPrice: Float!
	status: String!
	createdAt: String!
	updatedAt: String!
}

type Query {
	rooms(type: String, minPrice: Float, maxPrice: Float): [Room!]!
	customers: [Customer!]!
	bookings(status: String): [Booking!]!
	booking(id: ID!): Booking
}

type Mutation {
	createRoom(name: String!, type: String!, pricePerNight: Float!, features: [String]): Room
	createCustomer(name: String!, email: String!, phone: String!): Customer
	createBooking(customerId: ID!, roomId: ID!, startDate: String!, endDate: String!): Booking
	updateBooking(bookingId: ID!, status: String!): Booking
	deleteBooking(bookingId: ID!): String
}
`
