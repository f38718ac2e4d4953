package intent

import "fmt"

// Prompt templates for the intent pipeline. Every prompt demands a single
// delimited tag so the LM output can be parsed defensively; the model is
// treated as an untrusted parser and every slot has a deterministic fallback.

const classifyPromptTemplate = `You are an intent classifier for a file management assistant.
The user speaks Korean or English. Classify the command into exactly one type:

- move: move files/folders to another folder (이동)
- copy: copy files/folders (복사)
- delete: delete files/folders (삭제)
- rename: change the name of a file/folder (이름 변경)
- create_folder: create a new folder (폴더 생성)
- search: find documents or ask where something is (검색, 어디)
- summarize: summarize selected documents (요약)
- error: not a file management command, or unintelligible

Respond with ONLY the tag, nothing else:
<operation.type>TYPE</operation.type>

Command: %s`

const destinationPromptTemplate = `The user wants to move or copy files. Extract the destination folder NAME
mentioned in the command. Return only the bare folder name, without particles
(조사) or the word "폴더"/"folder". If no folder is mentioned, return NONE.

Respond with ONLY the tag:
<destination.folder>NAME</destination.folder>

Command: %s`

const renamePromptTemplate = `The user wants to rename a file or folder. Extract the NEW name only.
Include a file extension only if the user stated one. Do not include particles
(조사), quotes, or any explanation.

Respond with ONLY the tag:
<new.name>NAME</new.name>

Command: %s`

const createFolderPromptTemplate = `The user wants to create a folder. Extract the folder name and where it
should be created. For the parent use the bare folder name mentioned, or
CURRENT if the user refers to the current location (현재 폴더, 여기, here),
or NONE if no location is mentioned.

Respond with ONLY the two tags:
<folder.name>NAME</folder.name>
<parent.folder>PARENT</parent.folder>

Command: %s`

const searchPromptTemplate = `Rewrite the user's command as a concise search term for a document search engine.
Rules:
- "where is X" style questions become "location of X" (Korean: "X 위치")
- "which folder has X" becomes "directory containing X" (Korean: "X 포함 폴더")
- content questions keep the document and topic words: "terms in the contract" -> "contract terms"
Answer in the same language as the command.

Respond with ONLY the tag:
<search.term>TERM</search.term>

Command: %s`

const summaryPromptTemplate = `Summarize the following document in 3 sentences or fewer.
Answer in the document's language.

Document title: %s

%s`

// SummaryPrompt renders the document summarization prompt.
func SummaryPrompt(title, content string) string {
	return fmt.Sprintf(summaryPromptTemplate, title, content)
}
