package password

// Stock rule tables. These mirror the published lists of most-used passwords
// and keyboard-adjacent runs; they are deliberately data, not logic.

const defaultSpecialChars = "!@#$%^&*(),.?\":{}|<>[]\\`~"

var defaultBlacklist = []string{
	"password", "123456", "123456789", "qwerty", "abc123", "password123",
	"admin", "letmein", "welcome", "monkey", "1234567890", "dragon",
	"master", "hello", "freedom", "whatever", "qazwsx", "trustno1",
	"jordan", "jennifer", "zxcvbnm", "asdfgh", "hunter", "buster",
	"soccer", "harley", "andrew", "tigger", "sunshine", "iloveyou",
	"2000", "charlie", "robert", "thomas", "hockey", "ranger",
	"daniel", "starwars", "klaster", "112233", "george", "computer",
	"michelle", "jessica", "pepper", "1234", "zxcvbn", "555555",
	"111111", "131313", "777777", "pass", "maggie",
	"159753", "aaaaaa", "ginger", "princess", "joshua", "cheese",
	"amanda", "summer", "love", "ashley", "nicole", "chelsea",
	"biteme", "matthew", "access", "yankees", "987654321", "dallas",
	"austin", "thunder", "taylor", "matrix", "mobilemail", "mom",
	"preston", "scooter", "raiders", "merlin", "teamo",
	"lakers", "andrea", "knight", "tigers", "purple", "superman",
	"mickey", "shadow", "melissa", "121212", "patrick", "hannah",
	"123123", "sarah", "danielle", "brittany", "samantha",
	"elizabeth", "stephanie", "lauren", "rachel", "emily", "megan",
	"amber", "crystal", "tiffany", "christina", "heather",
	"password1", "password12", "password1234",
	"admin123", "admin1234", "root123", "root1234",
	"user123", "user1234", "test123", "test1234",
	"guest123", "guest1234", "demo123", "demo1234",
	"temp123", "temp1234", "temp12345", "temp123456",
	"qwerty123", "qwerty1234", "qwerty12345", "qwerty123456",
	"asdf123", "asdf1234", "asdf12345", "asdf123456",
	"zxcv123", "zxcv1234", "zxcv12345", "zxcv123456",
	"123456a", "123456ab", "123456abc", "123456abcd",
	"abcdef1", "abcdef12", "abcdef123", "abcdef1234",
	"qwerty1", "qwerty12",
	"asdfgh1", "asdfgh12", "asdfgh123", "asdfgh1234",
	"zxcvbn1", "zxcvbn12", "zxcvbn123", "zxcvbn1234",
}

var defaultSequences = []string{
	"123", "234", "345", "456", "567", "678", "789", "890",
	"abc", "bcd", "cde", "def", "efg", "fgh", "ghi", "hij",
	"jkl", "klm", "lmn", "mno", "nop", "opq", "pqr", "qrs",
	"rst", "stu", "tuv", "uvw", "vwx", "wxy", "xyz",
	"qwe", "wer", "ert", "rty", "tyu", "yui", "uio", "iop",
	"asd", "sdf", "dfg", "ghj", "hjk",
	"zxc", "xcv", "cvb", "vbn", "bnm",
}

var defaultKeyboardPatterns = []string{
	"qwerty", "asdfgh", "zxcvbn", "qwertyuiop", "asdfghjkl",
	"zxcvbnm", "qwertyuiopasdfghjklzxcvbnm", "1234567890",
	"abcdefghijklmnopqrstuvwxyz",
}

var defaultPersonalWords = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
	"monday", "tuesday", "wednesday", "thursday",
	"friday", "saturday", "sunday",
	"birthday", "birth", "date", "name", "username", "email",
}
