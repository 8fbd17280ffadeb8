package contact

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain ten digits", "call me at 9876543210", "9876543210"},
		{"spaced groups", "my number is 98765 43210", "9876543210"},
		{"country code", "reach me on +91 98765 43210 after 6", "+919876543210"},
		{"hyphens and parentheses", "office (022) 2345-6789 ext", "02223456789"},
		{"plus with parenthesis", "+(1) 555 010 9999", "+15550109999"},
		{"dots", "555.010.9999.1", "55501099991"},
		{"two numbers picks the first", "9876543210 or 9123456780", "9876543210"},
		{"date then number", "arriving 2024-05-12, call 9876543210", "9876543210"},
		{"dotted date beside number", "travelling 12.05.2024 9876543210", "9876543210"},
		{"iso date beside number", "dates 2024-05-12 9876543210", "9876543210"},
		{"slash date beside number", "from 12/05/2024 9876543210", "9876543210"},
		{"two dates then number", "12.05.2024 19.05.2024 9876543210", "9876543210"},
		{"number then date", "+91 98765 43210 on 12-05-2024", "+919876543210"},

		// false positives that must not be reported
		{"iso date", "we travel on 2024-05-12", ""},
		{"slash date", "from 12/05/2024 to 19/05/2024", ""},
		{"dotted date", "starting 12.05.2024 please", ""},
		{"date glued to digits", "2024-05-12 9876", ""},
		{"price", "budget is 150000 rupees", ""},
		{"too short", "call 98765 4321", ""},
		{"too long", "card 1234567890123456", ""},
		{"no digits", "hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Phone(tt.text); got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Contact
	}{
		{
			name: "phone only",
			text: "call me at 9876543210",
			want: Contact{Phone: "9876543210"},
		},
		{
			name: "email only",
			text: "Write to Asha.Rao@Example.com.",
			want: Contact{Email: "asha.rao@example.com"},
		},
		{
			name: "digits inside email are not a phone",
			text: "mail 9876543210@example.in",
			want: Contact{Email: "9876543210@example.in"},
		},
		{
			name: "name email and phone",
			text: "Hi, my name is Asha Rao, email asha@example.com or +91 9876543210",
			want: Contact{Name: "Asha Rao", Email: "asha@example.com", Phone: "+919876543210"},
		},
		{
			name: "lowercase name stops at one word",
			text: "my name is asha and my number is 9876543210",
			want: Contact{Name: "asha", Phone: "9876543210"},
		},
		{
			name: "nothing",
			text: "What is the best time to visit Ladakh?",
			want: Contact{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFound(t *testing.T) {
	if (Contact{Name: "Asha"}).Found() {
		t.Error("a name alone is not a lead")
	}
	if !(Contact{Phone: "9876543210"}).Found() {
		t.Error("phone should count as found")
	}
	if !(Contact{Email: "a@b.co"}).Found() {
		t.Error("email should count as found")
	}
}
