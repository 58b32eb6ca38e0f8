package game

// Generation topics are drawn from a fixed curated list so the oracle keeps
// producing short, solvable snippets.
var topics = []string{
	"Write a function that reverses a linked list",
	"Write a function that finds the second largest number in a list",
	"Write a class that implements a basic stack with push, pop, and peek",
	"Write a function that checks if a string is a valid palindrome ignoring spaces and case",
	"Write a function that merges two sorted lists into one sorted list",
	"Write a function that computes the nth Fibonacci number using memoization",
	"Write a function that finds all prime numbers up to n using Sieve of Eratosthenes",
	"Write a function that rotates a matrix 90 degrees clockwise",
	"Write a function that finds the longest common substring of two strings",
	"Write a function that implements binary search on a sorted array",
	"Write a function that converts a Roman numeral string to an integer",
	"Write a function that validates balanced parentheses in a string",
	"Write a function that removes duplicates from a sorted linked list",
	"Write a function that computes the power set of a given set",
	"Write a function that finds the majority element in an array",
}
