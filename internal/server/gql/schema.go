package gql

// Schema is the GraphQL contract served at /graphql. Ids are Int and
// createdAt is epoch milliseconds rendered as a string.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	getEmployees: [Employee!]!
	getEmployee(id: Int!): Employee
}

type Mutation {
	createEmployee(
		firstName: String!
		lastName: String!
		age: Int!
		phoneNumber: String!
		email: String!
		jobLocation: String!
	): Employee!
	deleteEmployee(id: Int!): Boolean!

	createPost(title: String!, content: String!, employeeId: Int!): Post!
	deletePost(id: Int!): Boolean!

	createComment(content: String!, postId: Int!): Comment!
	deleteComment(id: Int!): Boolean!
}

type Employee {
	id: Int!
	firstName: String!
	lastName: String!
	age: Int!
	phoneNumber: String!
	email: String!
	jobLocation: String!
	createdAt: String!
	posts: [Post!]!
}

type Post {
	id: Int!
	employeeId: Int!
	title: String!
	content: String!
	createdAt: String!
	comments: [Comment!]!
}

type Comment {
	id: Int!
	postId: Int!
	content: String!
	createdAt: String!
}
`
