// internal/app/features/graphql/schema.go
package graphql

// Schema is the GraphQL surface. It mirrors the REST endpoints over cursor
// pagination: every list query returns a relay-style connection.
//
// Subscription is declared for schema compatibility with clients but is not
// served; subscribing reports an error.
const Schema = `
schema {
	query: Query
	mutation: Mutation
	subscription: Subscription
}

scalar DateTime

type TimeWindow {
	startHour: Int!
	endHour: Int!
	description: String
}

type Habit {
	id: ID!
	title: String!
	scriptureText: String!
	translation: String!
	benefits: String!
	tags: [String!]!
	category: String!
	priority: Int!
	contextTags: [String!]!
	lifeEvent: String
	timeWindow: TimeWindow
	createdAt: DateTime!
}

type PageInfo {
	hasNextPage: Boolean!
	hasPreviousPage: Boolean!
	startCursor: String
	endCursor: String
}

type HabitEdge {
	node: Habit!
	cursor: String!
}

type HabitConnection {
	edges: [HabitEdge!]!
	pageInfo: PageInfo!
	totalCount: Int!
}

input HabitFilterInput {
	category: String
	tags: [String!]
}

type Bundle {
	id: ID!
	name: String!
	description: String!
	habitIds: [ID!]!
	thumbnailUrl: String
	displayOrder: Int!
	createdAt: DateTime!
	habits: [Habit!]!
}

type BundleEdge {
	node: Bundle!
	cursor: String!
}

type BundleConnection {
	edges: [BundleEdge!]!
	pageInfo: PageInfo!
	totalCount: Int!
}

type User {
	uid: ID!
	displayName: String!
	email: String!
	role: String!
	locale: String
	createdAt: DateTime!
}

type Completion {
	id: ID!
	habitId: ID!
	habit: Habit
	completedAt: DateTime!
	source: String!
	note: String
}

type CompletionEdge {
	node: Completion!
	cursor: String!
}

type CompletionConnection {
	edges: [CompletionEdge!]!
	pageInfo: PageInfo!
	totalCount: Int!
}

type CategoryStat {
	category: String!
	count: Int!
	percentage: Float!
}

type CompletionStats {
	totalCompletions: Int!
	completionsThisWeek: Int!
	completionsThisMonth: Int!
	currentStreak: Int!
	longestStreak: Int!
	completionsByCategory: [CategoryStat!]!
	recentCompletions: [Completion!]!
}

type Query {
	habits(filter: HabitFilterInput, first: Int, after: String): HabitConnection!
	habit(id: ID!): Habit
	searchHabits(query: String!, limit: Int): [Habit!]!
	bundles(first: Int, after: String): BundleConnection!
	bundle(id: ID!): Bundle
	bundleHabits(bundleId: ID!): [Habit!]!
	user(userId: ID!): User
	me: User
	completions(userId: ID!, habitId: ID, startDate: DateTime, endDate: DateTime, first: Int, after: String): CompletionConnection!
	completionStats(userId: ID!): CompletionStats!
}

input CreateUserInput {
	displayName: String!
	email: String!
	locale: String
}

input UpdateUserInput {
	displayName: String
	locale: String
}

input CreateCompletionInput {
	habitId: ID!
	source: String
	note: String
}

type Mutation {
	createUser(input: CreateUserInput!): User!
	updateUser(userId: ID!, input: UpdateUserInput!): User!
	deleteUser(userId: ID!): Boolean!
	createCompletion(input: CreateCompletionInput!): Completion!
	deleteCompletion(userId: ID!, completionId: ID!): Boolean!
}

type Subscription {
	completionAdded(userId: ID!): Completion!
}
`
