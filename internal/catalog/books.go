package catalog

import "github.com/desertthunder/bookx/internal/models"

var demoBooks = []models.Book{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960},
	{Title: "1984", Author: "George Orwell", Year: 1949},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", Year: 1951},
	{Title: "Animal Farm", Author: "George Orwell", Year: 1945},
	{Title: "Lord of the Flies", Author: "William Golding", Year: 1954},
	{Title: "Brave New World", Author: "Aldous Huxley", Year: 1932},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937},
	{Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", Year: 1997},
	{Title: "The Da Vinci Code", Author: "Dan Brown", Year: 2003},
	{Title: "The Alchemist", Author: "Paulo Coelho", Year: 1988},
	{Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", Year: 1943},
	{Title: "Charlotte's Web", Author: "E.B. White", Year: 1952},
	{Title: "The Lion, the Witch and the Wardrobe", Author: "C.S. Lewis", Year: 1950},
	{Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", Year: 1954},
	{Title: "Harry Potter and the Chamber of Secrets", Author: "J.K. Rowling", Year: 1998},
	{Title: "The Chronicles of Narnia", Author: "C.S. Lewis", Year: 1950},
	{Title: "Fahrenheit 451", Author: "Ray Bradbury", Year: 1953},
	{Title: "The Hunger Games", Author: "Suzanne Collins", Year: 2008},
	{Title: "Divergent", Author: "Veronica Roth", Year: 2011},
	{Title: "The Fault in Our Stars", Author: "John Green", Year: 2012},
	{Title: "Gone Girl", Author: "Gillian Flynn", Year: 2012},
	{Title: "The Girl with the Dragon Tattoo", Author: "Stieg Larsson", Year: 2005},
	{Title: "The Book Thief", Author: "Markus Zusak", Year: 2005},
	{Title: "Life of Pi", Author: "Yann Martel", Year: 2001},
	{Title: "The Kite Runner", Author: "Khaled Hosseini", Year: 2003},
	{Title: "The Help", Author: "Kathryn Stockett", Year: 2009},
	{Title: "The Lovely Bones", Author: "Alice Sebold", Year: 2002},
	{Title: "Water for Elephants", Author: "Sara Gruen", Year: 2006},
	{Title: "The Time Traveler's Wife", Author: "Audrey Niffenegger", Year: 2003},
	{Title: "The Secret Life of Bees", Author: "Sue Monk Kidd", Year: 2002},
	{Title: "Memoirs of a Geisha", Author: "Arthur Golden", Year: 1997},
	{Title: "The Curious Incident of the Dog in the Night-Time", Author: "Mark Haddon", Year: 2003},
	{Title: "The Perks of Being a Wallflower", Author: "Stephen Chbosky", Year: 1999},
	{Title: "Looking for Alaska", Author: "John Green", Year: 2005},
	{Title: "An Abundance of Katherines", Author: "John Green", Year: 2006},
	{Title: "Paper Towns", Author: "John Green", Year: 2008},
	{Title: "Turtles All the Way Down", Author: "John Green", Year: 2017},
}
