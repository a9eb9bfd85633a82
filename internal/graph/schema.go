package graph

// Schema is the GraphQL contract the API serves. Field names are part
// of the client contract and must not change.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	login(email: String!, password: String!): AuthData!
	posts(page: Int): PostData!
}

type Mutation {
	createUser(userInput: UserInputData): User!
	createPost(postInput: PostInputData): Post!
}

type User {
	_id: ID!
	name: String!
	email: String!
	password: String
	posts: [Post!]!
}

type Post {
	_id: ID!
	title: String!
	content: String!
	imageUrl: String
	creator: User!
	createdAt: String!
	updatedAt: String!
}

type AuthData {
	token: String!
	userId: String!
}

type PostData {
	posts: [Post!]!
	totalPosts: Int!
}

input UserInputData {
	email: String!
	name: String!
	password: String!
}

input PostInputData {
	title: String!
	content: String!
	imageUrl: String
}
`
