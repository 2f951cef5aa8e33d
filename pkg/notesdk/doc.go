/*
Package notesdk is a Go client for the notepad API.

# Overview

A Client behaves like the browser front end: it keeps the session cookie set
by Register or Login in a cookie jar and sends it with every later request.

	client, err := notesdk.NewClient("http://localhost:5000")
	if err != nil {
		return err
	}

	if _, err := client.Login(ctx, "alice", "secret1"); err != nil {
		return err
	}

	note, err := client.CreateNote(ctx, notesdk.CreateNoteRequest{
		Title:   "Groceries",
		Content: "Milk, eggs",
	})

Non-browser callers that already hold a token can skip the cookie and set
BearerToken instead.

# Errors

Responses outside 2xx come back as *APIError carrying the status code, the
machine readable code and the server's message, which is meant to be shown to
the user as is:

	var apiErr *notesdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == notesdk.ErrorCodeNotFound {
		// gone
	}

Transport failures wrap ErrUnreachable, so "server down" can be told apart
from "server said no":

	if errors.Is(err, notesdk.ErrUnreachable) {
		fmt.Println("cannot reach the notes server")
	}

# Validation

ValidateNote and ValidateCategory run the same checks as the server before a
request is sent. They are a convenience; the server validates again.
*/
package notesdk
