package client

const employeeFields = `
	id
	firstName
	lastName
	age
	phoneNumber
	email
	jobLocation
	createdAt
	posts {
		id
		employeeId
		title
		content
		createdAt
		comments {
			id
			postId
			content
			createdAt
		}
	}`

const (
	pingQuery = `query { __typename }`

	getEmployeesQuery = `query getEmployees {
	getEmployees {` + employeeFields + `
	}
}`

	getEmployeeQuery = `query getEmployee($id: Int!) {
	getEmployee(id: $id) {` + employeeFields + `
	}
}`

	createEmployeeMutation = `mutation CreateEmployee(
	$firstName: String!
	$lastName: String!
	$age: Int!
	$phoneNumber: String!
	$email: String!
	$jobLocation: String!
) {
	createEmployee(
		firstName: $firstName
		lastName: $lastName
		age: $age
		phoneNumber: $phoneNumber
		email: $email
		jobLocation: $jobLocation
	) {
		id firstName lastName age phoneNumber email jobLocation createdAt
	}
}`

	deleteEmployeeMutation = `mutation DeleteEmployee($id: Int!) {
	deleteEmployee(id: $id)
}`

	createPostMutation = `mutation CreatePost($title: String!, $content: String!, $employeeId: Int!) {
	createPost(title: $title, content: $content, employeeId: $employeeId) {
		id employeeId title content createdAt
	}
}`

	deletePostMutation = `mutation DeletePost($postId: Int!) {
	deletePost(id: $postId)
}`

	createCommentMutation = `mutation CreateComment($content: String!, $postId: Int!) {
	createComment(content: $content, postId: $postId) {
		id postId content createdAt
	}
}`

	deleteCommentMutation = `mutation DeleteComment($commentId: Int!) {
	deleteComment(id: $commentId)
}`
)
